package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/gin-gonic/gin"
)

// StreamProjects is a view subscriber over Server-Sent Events: it sends the
// current snapshot on connect and again after every store notification.
// The listener is removed when the client disconnects.
func (h *Handler) StreamProjects(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	// Only the latest snapshot matters to a view, so a slow client gets
	// intermediate snapshots replaced rather than queued.
	updates := make(chan []domain.Project, 1)
	sub := h.boardService.AddListener(func(items []domain.Project) {
		select {
		case updates <- items:
			return
		default:
		}
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- items:
		default:
		}
	})
	defer sub.Unsubscribe()

	initial, err := h.boardService.ListProjects(requestContext(c), "")
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)

	if err := h.writeSnapshot(c, flusher, initial, status); err != nil {
		return
	}

	ctx := c.Request.Context()
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-h.done:
			return

		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()

		case items := <-updates:
			if err := h.writeSnapshot(c, flusher, items, status); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeSnapshot(c *gin.Context, flusher http.Flusher, items []domain.Project, status domain.Status) error {
	if status != "" {
		items = domain.FilterByStatus(items, status)
	}
	if items == nil {
		items = []domain.Project{}
	}
	data, err := h.marshal(gin.H{"projects": items})
	if err != nil {
		service.NewLogger(requestContext(c)).LogError("stream_snapshot", fmt.Errorf("failed to marshal snapshot: %w", err))
		fmt.Fprintf(c.Writer, "event: error\ndata: %s\n\n", `{"error":"snapshot unavailable"}`)
		flusher.Flush()
		return err
	}
	fmt.Fprintf(c.Writer, "event: snapshot\ndata: %s\n\n", string(data))
	flusher.Flush()
	return nil
}
