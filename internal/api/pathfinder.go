package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/engine"
	"github.com/virtgraph/vgcore/internal/safety"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

// PathfinderHandler serves the shortest-path endpoints.
type PathfinderHandler struct {
	pool   *dbconn.Pool
	limits safety.Limits
	log    *logrus.Logger
}

// NewPathfinderHandler creates a PathfinderHandler.
func NewPathfinderHandler(pool *dbconn.Pool, limits safety.Limits, log *logrus.Logger) *PathfinderHandler {
	return &PathfinderHandler{pool: pool, limits: limits, log: log}
}

type shortestPathRequest struct {
	sqlbuilder.Binding `json:",inline"`
	Start              any   `json:"start"`
	End                any   `json:"end"`
	ExcludedNodes      []any `json:"excluded_nodes"`
}

// ShortestPath handles POST /v1/shortest-path.
func (h *PathfinderHandler) ShortestPath(c *gin.Context) {
	var req shortestPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	result, err := engine.ShortestPath(c.Request.Context(), h.pool, req.Binding, h.limits, req.Start, req.End, req.ExcludedNodes)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type allShortestPathsRequest struct {
	shortestPathRequest
	MaxPaths int `json:"max_paths"`
}

// AllShortestPaths handles POST /v1/shortest-path/all.
func (h *PathfinderHandler) AllShortestPaths(c *gin.Context) {
	var req allShortestPathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	maxPaths := req.MaxPaths
	if maxPaths <= 0 {
		maxPaths = 100
	}

	result, err := engine.AllShortestPaths(c.Request.Context(), h.pool, req.Binding, h.limits, req.Start, req.End, req.ExcludedNodes, maxPaths)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
