package http

import (
	"net/http"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/dragdrop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/view"
	"github.com/gin-gonic/gin"
)

// GetList returns the rendered view of one status list.
func (h *Handler) GetList(c *gin.Context) {
	list, ok := h.list(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "list": renderList(list)})
}

// DropOnList drops a project on a list in one call: drag over followed by
// drop, with the list's own drop zone.
func (h *Handler) DropOnList(c *gin.Context) {
	list, ok := h.list(c)
	if !ok {
		return
	}

	var req projectRefReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	dt := dragdrop.StartDrag(req.ProjectID)
	if !list.DragOver(dt) {
		writeError(c, dragdrop.ErrDropNotAccepted)
		return
	}
	moved, err := list.Drop(requestContext(c), dt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "moved": moved})
}

func (h *Handler) list(c *gin.Context) (*view.ProjectList, bool) {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	list, ok := h.lists[status]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "list not found"})
		return nil, false
	}
	return list, true
}

func renderList(l *view.ProjectList) listResp {
	items := l.Items()
	out := listResp{
		Status:      l.Status(),
		Title:       l.Title(),
		ElementID:   l.ElementID(),
		ContainerID: l.ContainerID(),
		Droppable:   l.Droppable(),
		Items:       make([]listItemResp, 0, len(items)),
	}
	for _, it := range items {
		p := it.Project()
		out.Items = append(out.Items, listItemResp{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			People:      p.People,
			PeopleLabel: it.PeopleLabel(),
		})
	}
	return out
}
