package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/dragdrop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/eventloop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr), errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, dragdrop.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateProjectID),
		errors.Is(err, dragdrop.ErrDropNotAccepted),
		errors.Is(err, dragdrop.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, eventloop.ErrLoopStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
}

// requestContext carries the request id set by the middleware into the
// service logger.
func requestContext(c *gin.Context) context.Context {
	return service.WithRequestID(c.Request.Context(), c.GetString("request_id"))
}
