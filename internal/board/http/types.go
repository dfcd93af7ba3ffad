package http

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/dragdrop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/GoSim-25-26J-441/project-board/internal/board/view"
)

const defaultKeepAlive = 15 * time.Second

// Handler handles HTTP requests for the board
type Handler struct {
	boardService *service.BoardService
	drags        *dragdrop.Coordinator
	lists        map[domain.Status]*view.ProjectList
	keepAlive    time.Duration
	marshal      func(any) ([]byte, error)

	closeOnce sync.Once
	done      chan struct{}
}

// New creates a new Handler
func New(boardService *service.BoardService, drags *dragdrop.Coordinator, lists ...*view.ProjectList) *Handler {
	h := &Handler{
		boardService: boardService,
		drags:        drags,
		lists:        make(map[domain.Status]*view.ProjectList, len(lists)),
		keepAlive:    defaultKeepAlive,
		marshal:      json.Marshal,
		done:         make(chan struct{}),
	}
	for _, l := range lists {
		h.lists[l.Status()] = l
	}
	return h
}

// SetKeepAlive changes the interval of SSE keep-alive comments.
func (h *Handler) SetKeepAlive(d time.Duration) {
	if d > 0 {
		h.keepAlive = d
	}
}

// CloseStreams ends every open SSE stream. http.Server.Shutdown does not
// cancel request contexts, so it is registered as a shutdown hook.
func (h *Handler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.done) })
}

type createProjectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}

type statusReq struct {
	Status string `json:"status"`
}

type projectRefReq struct {
	ProjectID string `json:"project_id"`
}

type listItemResp struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
	PeopleLabel string `json:"people_label"`
}

type listResp struct {
	Status      domain.Status  `json:"status"`
	Title       string         `json:"title"`
	ElementID   string         `json:"element_id"`
	ContainerID string         `json:"container_id"`
	Droppable   bool           `json:"droppable"`
	Items       []listItemResp `json:"items"`
}
