package bootstrap

import (
	"slices"
	"time"

	httpapi "github.com/GoSim-25-26J-441/project-board/internal/api/http"
	"github.com/GoSim-25-26J-441/project-board/internal/api/http/middleware"
	boardhttp "github.com/GoSim-25-26J-441/project-board/internal/board/http"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	AllowedOrigins []string
	Redis          *redis.Client
	Board          *boardhttp.Handler
	Health         []httpapi.HealthOption
	Metrics        *httpapi.MetricsHandler
	Limiter        *middleware.RateLimiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(corsConfig(dep.AllowedOrigins)))

	healthOpts := dep.Health
	if dep.Redis != nil {
		healthOpts = append(healthOpts, httpapi.WithRedis(dep.Redis))
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, healthOpts...)
	healthHandler.RegisterRoutes(r)

	if dep.Metrics != nil {
		dep.Metrics.RegisterRoutes(r)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	var writeMiddleware []gin.HandlerFunc
	if dep.Limiter != nil {
		writeMiddleware = append(writeMiddleware, dep.Limiter.Middleware())
	}
	dep.Board.Register(api.Group("/board"), writeMiddleware...)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "X-Request-Id")
	cfg.ExposeHeaders = []string{"X-Request-Id"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
