package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/eventloop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/state"
)

// BoardService handles the creation and move flows. Mutations run on the
// event loop; reads go straight to the store, which only hands out copies.
type BoardService struct {
	state   *state.ProjectState
	loop    *eventloop.Loop
	metrics *Metrics
}

// NewBoardService creates a new board service
func NewBoardService(st *state.ProjectState, loop *eventloop.Loop) *BoardService {
	s := &BoardService{
		state:   st,
		loop:    loop,
		metrics: &Metrics{},
	}

	st.SetFailureHandler(func(err error) {
		s.metrics.listenerFailures.Add(1)
		NewLogger(context.Background()).LogError("notify_listeners", err)
	})
	st.AddListener(func([]domain.Project) {
		s.metrics.notifications.Add(1)
	})

	return s
}

// CreateProject validates req and appends a new active project.
func (s *BoardService) CreateProject(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	logger := NewLogger(ctx)

	req.Normalize()
	if err := req.Validate(); err != nil {
		s.metrics.rejectedRequests.Add(1)
		return domain.Project{}, err
	}

	var (
		project domain.Project
		addErr  error
	)
	err := s.loop.Submit(ctx, func() {
		project = domain.NewProject(s.state.NextID(), req.Title, req.Description, req.People)
		addErr = s.state.AddProject(project)
	})
	if err == nil {
		err = addErr
	}
	if err != nil {
		logger.LogError("create_project", err)
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}

	s.metrics.projectsCreated.Add(1)
	logger.LogInfof("create_project", "project_id=%s people=%d", project.ID, project.People)
	return project, nil
}

// MoveProject moves the project to status. Unknown ids and moves to the
// current status report false without error.
func (s *BoardService) MoveProject(ctx context.Context, id string, status domain.Status) (bool, error) {
	logger := NewLogger(ctx)

	var (
		moved   bool
		moveErr error
	)
	err := s.loop.Submit(ctx, func() {
		moved, moveErr = s.state.MoveProject(id, status)
	})
	if err == nil {
		err = moveErr
	}
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidStatus) {
			logger.LogError("move_project", err)
		}
		return false, fmt.Errorf("move project: %w", err)
	}

	if moved {
		s.metrics.projectsMoved.Add(1)
		logger.LogInfof("move_project", "project_id=%s status=%s", id, status)
	} else {
		s.metrics.moveNoops.Add(1)
		logger.LogWarnf("move_project", "project_id=%s status=%s noop=true", id, status)
	}
	return moved, nil
}

// GetProject returns the project with the given id.
func (s *BoardService) GetProject(_ context.Context, id string) (domain.Project, error) {
	p, ok := s.state.Project(id)
	if !ok {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return p, nil
}

// ListProjects returns all projects in creation order, optionally restricted
// to one status. An empty status means all.
func (s *BoardService) ListProjects(_ context.Context, status domain.Status) ([]domain.Project, error) {
	projects := s.state.Projects()
	if status == "" {
		return projects, nil
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return domain.FilterByStatus(projects, status), nil
}

// AddListener registers a view on the underlying store.
func (s *BoardService) AddListener(fn state.Listener[domain.Project]) state.Subscription {
	return s.state.AddListener(fn)
}

// Metrics returns the current counters.
func (s *BoardService) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}
