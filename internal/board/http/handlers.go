package http

import (
	"net/http"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/gin-gonic/gin"
)

// CreateProject handles a submitted project form.
func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.boardService.CreateProject(requestContext(c), domain.CreateProjectRequest{
		Title:       req.Title,
		Description: req.Description,
		People:      req.People,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

// ListProjects returns the current snapshot, optionally filtered by ?status=.
func (h *Handler) ListProjects(c *gin.Context) {
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	items, err := h.boardService.ListProjects(requestContext(c), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// GetProject returns a single project.
func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.boardService.GetProject(requestContext(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

// MoveProject changes a project's status directly, without a drag session.
func (h *Handler) MoveProject(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	moved, err := h.boardService.MoveProject(requestContext(c), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "moved": moved})
}

// GetMetrics returns the board counters.
func (h *Handler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "metrics": h.boardService.Metrics()})
}

// statusQuery parses the optional ?status= filter. It writes the error
// response itself and returns false when the value is invalid.
func statusQuery(c *gin.Context) (domain.Status, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status, err := domain.ParseStatus(raw)
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return status, true
}
