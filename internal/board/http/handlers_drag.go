package http

import (
	"net/http"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/gin-gonic/gin"
)

// StartDrag opens a drag session for a project (drag start).
func (h *Handler) StartDrag(c *gin.Context) {
	var req projectRefReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.drags.Start(requestContext(c), req.ProjectID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "session": s})
}

// GetDragSession returns the state of a drag session.
func (h *Handler) GetDragSession(c *gin.Context) {
	s, err := h.drags.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

// DragOver records the session entering a list.
func (h *Handler) DragOver(c *gin.Context) {
	status, ok := bindStatus(c)
	if !ok {
		return
	}
	s, err := h.drags.Over(c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

// DragLeave records the session leaving the list it was over.
func (h *Handler) DragLeave(c *gin.Context) {
	s, err := h.drags.Leave(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

// Drop applies the drag session to the board.
func (h *Handler) Drop(c *gin.Context) {
	status, ok := bindStatus(c)
	if !ok {
		return
	}
	s, err := h.drags.Drop(requestContext(c), c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s, "moved": s.Moved})
}

// EndDrag closes the session (drag end). Without a prior drop this abandons
// the drag.
func (h *Handler) EndDrag(c *gin.Context) {
	s, err := h.drags.End(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": s})
}

func bindStatus(c *gin.Context) (domain.Status, bool) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return "", false
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return "", false
	}
	return status, true
}
