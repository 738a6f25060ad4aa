package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/middleware"
	"github.com/virtgraph/vgcore/internal/safety"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbconn.Pool
	Limits      safety.Limits
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB; request bodies are schema bindings and id lists, not bulk payloads
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine, mirroring
// the teacher's stack minus anything auth-related (this surface has no
// write path and no tenant concept).
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all read-only route handlers on the given group.
func registerRoutes(group *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version)
	traverse := NewTraverseHandler(deps.Pool, deps.Limits, log)
	pathfinder := NewPathfinderHandler(deps.Pool, deps.Limits, log)
	aggregate := NewAggregateHandler(deps.Pool, deps.Limits, log)
	network := NewNetworkHandler(deps.Pool, deps.Limits, log)

	group.GET("/health", health.Liveness)
	group.GET("/ready", health.Readiness)

	group.POST("/traverse", traverse.Traverse)
	group.POST("/traverse/collect", traverse.Collect)
	group.POST("/shortest-path", pathfinder.ShortestPath)
	group.POST("/shortest-path/all", pathfinder.AllShortestPaths)
	group.POST("/path-aggregate", aggregate.PathAggregate)
	group.GET("/network/components", network.Components)
	group.GET("/network/centrality", network.Centrality)
	group.POST("/network/resilience", network.Resilience)
}

// ginLogger returns a Gin middleware that writes one structured access-log
// line per request via logrus, in the teacher's request-id-correlated
// style.
func ginLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		requestID, _ := c.Get("request_id")

		log.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
		}).Info("request")
	}
}

// NewRouter creates and configures the Gin engine with all middleware and
// routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/v1"), deps)

	return r
}
