package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/eventloop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*BoardService, *state.ProjectState) {
	t.Helper()
	st := state.NewProjectState()
	loop := eventloop.New(16)
	loop.Start()
	t.Cleanup(loop.Stop)
	return NewBoardService(st, loop), st
}

func TestBoardService_CreateProject(t *testing.T) {
	svc, st := setupService(t)
	ctx := WithRequestID(context.Background(), "req-1")

	var received []domain.Project
	svc.AddListener(func(items []domain.Project) { received = items })

	t.Run("creates active project with first id", func(t *testing.T) {
		p, err := svc.CreateProject(ctx, domain.CreateProjectRequest{
			Title:       "  Build API ",
			Description: "REST service",
			People:      3,
		})
		require.NoError(t, err)
		assert.Equal(t, "1", p.ID)
		assert.Equal(t, "Build API", p.Title)
		assert.Equal(t, domain.StatusActive, p.Status)
		assert.Equal(t, []domain.Project{p}, received)
	})

	t.Run("rejects invalid request without touching the store", func(t *testing.T) {
		_, err := svc.CreateProject(ctx, domain.CreateProjectRequest{Title: "x", People: 3})
		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "description", vErr.Field)
		assert.Equal(t, 1, st.Len())
	})

	m := svc.Metrics()
	assert.Equal(t, int64(1), m.ProjectsCreated)
	assert.Equal(t, int64(1), m.RejectedRequests)
	assert.Equal(t, int64(1), m.Notifications)
}

func TestBoardService_MoveProject(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, domain.CreateProjectRequest{Title: "a", Description: "b", People: 1})
	require.NoError(t, err)

	moved, err := svc.MoveProject(ctx, "1", domain.StatusFinished)
	require.NoError(t, err)
	assert.True(t, moved)

	moved, err = svc.MoveProject(ctx, "1", domain.StatusFinished)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = svc.MoveProject(ctx, "nonexistent", domain.StatusActive)
	require.NoError(t, err)
	assert.False(t, moved)

	_, err = svc.MoveProject(ctx, "1", domain.Status("archived"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	m := svc.Metrics()
	assert.Equal(t, int64(1), m.ProjectsMoved)
	assert.Equal(t, int64(2), m.MoveNoops)
	assert.Equal(t, int64(2), m.Notifications)
	assert.InDelta(t, 66.66, m.NoopRate(), 0.01)
}

func TestBoardService_GetAndList(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := svc.CreateProject(ctx, domain.CreateProjectRequest{Title: title, Description: "d", People: 2})
		require.NoError(t, err)
	}
	_, err := svc.MoveProject(ctx, "2", domain.StatusFinished)
	require.NoError(t, err)

	p, err := svc.GetProject(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "two", p.Title)

	_, err = svc.GetProject(ctx, "9")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	all, err := svc.ListProjects(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	finished, err := svc.ListProjects(ctx, domain.StatusFinished)
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, "2", finished[0].ID)

	_, err = svc.ListProjects(ctx, domain.Status("nope"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestBoardService_ListenerFailuresAreCounted(t *testing.T) {
	svc, _ := setupService(t)
	delivered := false
	svc.AddListener(func([]domain.Project) { panic("broken view") })
	svc.AddListener(func([]domain.Project) { delivered = true })

	_, err := svc.CreateProject(context.Background(), domain.CreateProjectRequest{Title: "a", Description: "b", People: 1})
	require.NoError(t, err)

	assert.True(t, delivered)
	assert.Equal(t, int64(1), svc.Metrics().ListenerFailures)
}

func TestBoardService_StoppedLoop(t *testing.T) {
	st := state.NewProjectState()
	loop := eventloop.New(1)
	loop.Start()
	loop.Stop()
	svc := NewBoardService(st, loop)

	_, err := svc.CreateProject(context.Background(), domain.CreateProjectRequest{Title: "a", Description: "b", People: 1})
	assert.ErrorIs(t, err, eventloop.ErrLoopStopped)
}

func TestLoggerRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
	assert.Equal(t, "unknown", NewLogger(context.Background()).requestID)
}

func TestBoardService_ConcurrentMutationsAreSerialized(t *testing.T) {
	svc, st := setupService(t)
	const n = 32

	var (
		mu        sync.Mutex
		snapshots [][]domain.Project
	)
	svc.AddListener(func(items []domain.Project) {
		mu.Lock()
		snapshots = append(snapshots, items)
		mu.Unlock()
	})

	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := svc.CreateProject(context.Background(), domain.CreateProjectRequest{
				Title:       fmt.Sprintf("project %d", i),
				Description: "parallel",
				People:      1 + i%6,
			})
			assert.NoError(t, err)
			ids[i] = p.ID
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	mu.Lock()
	created := snapshots
	snapshots = nil
	mu.Unlock()

	require.Len(t, created, n)
	for i, snap := range created {
		require.Len(t, snap, i+1)
		if i > 0 {
			assert.Equal(t, created[i-1], snap[:i], "snapshot %d does not extend the previous one", i)
		}
	}

	final := st.Projects()
	for i, p := range final {
		assert.Equal(t, created[i][i].ID, p.ID)
	}

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.MoveProject(context.Background(), id, domain.StatusFinished)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	mu.Lock()
	moved := snapshots
	mu.Unlock()

	require.Len(t, moved, n)
	for i, snap := range moved {
		require.Len(t, snap, n)
		assert.Len(t, domain.FilterByStatus(snap, domain.StatusFinished), i+1)
	}
	assert.Equal(t, int64(n), svc.Metrics().ProjectsMoved)
}

func TestBoardService_NoopMoveIsLoggedAsWarning(t *testing.T) {
	svc, _ := setupService(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	_, err := svc.MoveProject(WithRequestID(context.Background(), "req-9"), "42", domain.StatusFinished)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[warn] request_id=req-9 operation=move_project project_id=42 status=finished noop=true")
}
