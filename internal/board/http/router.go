package http

import "github.com/gin-gonic/gin"

// Register registers the board routes. writeMiddleware wraps every route that
// changes board or drag state.
func (h *Handler) Register(rg *gin.RouterGroup, writeMiddleware ...gin.HandlerFunc) {
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/stream", h.StreamProjects)
	rg.GET("/projects/:id", h.GetProject)
	rg.GET("/lists/:status", h.GetList)
	rg.GET("/drag-sessions/:id", h.GetDragSession)
	rg.GET("/metrics", h.GetMetrics)

	w := rg.Group("", writeMiddleware...)
	w.POST("/projects", h.CreateProject)
	w.POST("/projects/:id/move", h.MoveProject)
	w.POST("/lists/:status/drop", h.DropOnList)
	w.POST("/drag-sessions", h.StartDrag)
	w.POST("/drag-sessions/:id/over", h.DragOver)
	w.POST("/drag-sessions/:id/leave", h.DragLeave)
	w.POST("/drag-sessions/:id/drop", h.Drop)
	w.DELETE("/drag-sessions/:id", h.EndDrag)
}
