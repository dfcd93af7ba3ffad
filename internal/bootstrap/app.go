package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/GoSim-25-26J-441/project-board/config"
	httpapi "github.com/GoSim-25-26J-441/project-board/internal/api/http"
	"github.com/GoSim-25-26J-441/project-board/internal/api/http/middleware"
	cronjob "github.com/GoSim-25-26J-441/project-board/internal/board/cron"
	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/dragdrop"
	"github.com/GoSim-25-26J-441/project-board/internal/board/eventloop"
	boardhttp "github.com/GoSim-25-26J-441/project-board/internal/board/http"
	"github.com/GoSim-25-26J-441/project-board/internal/board/repository"
	"github.com/GoSim-25-26J-441/project-board/internal/board/seed"
	"github.com/GoSim-25-26J-441/project-board/internal/board/service"
	"github.com/GoSim-25-26J-441/project-board/internal/board/state"
	"github.com/GoSim-25-26J-441/project-board/internal/board/view"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	clientSweepSchedule = "@every 1m"
	clientMaxIdle       = 3 * time.Minute
)

// App is the board process: one store, its event loop, the views and
// everything serving them.
type App struct {
	Router *gin.Engine
	Board  *service.BoardService
	Drags  *dragdrop.Coordinator
	Lists  []*view.ProjectList

	store     *state.ProjectState
	loop      *eventloop.Loop
	handler   *boardhttp.Handler
	scheduler *cronjob.Scheduler
	redis     *redis.Client
}

// New wires the application from cfg. A configured Redis must be reachable;
// a configured seed file must be valid.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		store: state.NewProjectState(),
		loop:  eventloop.New(cfg.Board.QueueSize),
	}
	a.loop.Start()

	a.Board = service.NewBoardService(a.store, a.loop)
	a.Lists = []*view.ProjectList{
		view.NewProjectList(domain.StatusActive, a.Board, a.Board),
		view.NewProjectList(domain.StatusFinished, a.Board, a.Board),
	}
	a.Drags = dragdrop.NewCoordinator(a.Board, dragdrop.WithTargets(a.Lists[0].Target, a.Lists[1].Target))

	if cfg.Redis.Addr != "" {
		client, err := OpenRedis(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client

		publisher := repository.NewSnapshotPublisher(client, cfg.Redis.Channel)
		a.Board.AddListener(publisher.Listener())
		log.Printf("Publishing board snapshots to redis channel %s", publisher.Channel())
	}

	if cfg.Board.SeedFile != "" {
		fixtures, err := seed.Load(cfg.Board.SeedFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		created, err := seed.Apply(ctx, a.Board, fixtures)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("seed board: %w", err)
		}
		log.Printf("Seeded %d projects from %s", len(created), cfg.Board.SeedFile)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	a.scheduler = cronjob.NewScheduler(a.Drags, cfg.Board.SweepSchedule, cfg.Board.DragSessionTTL)
	a.scheduler.AddSweep("rate_limit_clients", clientSweepSchedule, limiter, clientMaxIdle)

	a.handler = boardhttp.New(a.Board, a.Drags, a.Lists...)

	metrics := httpapi.NewMetricsHandler("board", a.Board, map[string]func() float64{
		"projects":           func() float64 { return float64(a.store.Len()) },
		"drag_sessions_open": func() float64 { return float64(a.Drags.Active()) },
		"listeners":          func() float64 { return float64(a.store.ListenerCount()) },
	})

	a.Router = BuildRouter(RouterDeps{
		ServiceName:    cfg.App.ServiceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Redis:          a.redis,
		Board:          a.handler,
		Health:         []httpapi.HealthOption{httpapi.WithProjectCount(a.store.Len)},
		Metrics:        metrics,
		Limiter:        limiter,
	})

	return a, nil
}

// Start starts the background sweeps.
func (a *App) Start() error {
	return a.scheduler.Start()
}

// CloseStreams ends open SSE connections.
func (a *App) CloseStreams() {
	if a.handler != nil {
		a.handler.CloseStreams()
	}
}

// Close stops the background work. Queued board tasks finish first.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.CloseStreams()
	for _, l := range a.Lists {
		l.Close()
	}
	a.loop.Stop()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("Warning: closing redis: %v", err)
		}
	}
}
