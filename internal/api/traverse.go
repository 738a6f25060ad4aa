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

// TraverseHandler serves the bounded-traversal endpoints.
type TraverseHandler struct {
	pool   *dbconn.Pool
	limits safety.Limits
	log    *logrus.Logger
}

// NewTraverseHandler creates a TraverseHandler.
func NewTraverseHandler(pool *dbconn.Pool, limits safety.Limits, log *logrus.Logger) *TraverseHandler {
	return &TraverseHandler{pool: pool, limits: limits, log: log}
}

// traverseRequest is the shared request body for traverse and
// traverse/collect: a schema binding plus the Frontier Engine's
// parameters, per spec §4.3.
type traverseRequest struct {
	sqlbuilder.Binding `json:",inline"`
	StartIDs           []any  `json:"start_ids"`
	Direction          string `json:"direction"`
	MaxDepth           int    `json:"max_depth"`
	ExcludedNodes      []any  `json:"excluded_nodes"`
	SkipEstimation     bool   `json:"skip_estimation"`
}

func (r traverseRequest) direction() engine.Direction {
	switch r.Direction {
	case "inbound":
		return engine.Inbound
	case "both":
		return engine.Both
	default:
		return engine.Outbound
	}
}

// Traverse handles POST /v1/traverse.
func (h *TraverseHandler) Traverse(c *gin.Context) {
	var req traverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	result, err := engine.Traverse(c.Request.Context(), h.pool, req.Binding, h.limits, engine.TraverseOptions{
		StartIDs:       req.StartIDs,
		Direction:      req.direction(),
		MaxDepth:       req.MaxDepth,
		ExcludedNodes:  req.ExcludedNodes,
		SkipEstimation: req.SkipEstimation,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// collectRequest extends traverseRequest with the predicate
// traverse_collecting filters hydrated nodes by.
type collectRequest struct {
	traverseRequest
	TargetCondition string `json:"target_condition"`
}

// Collect handles POST /v1/traverse/collect.
func (h *TraverseHandler) Collect(c *gin.Context) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	result, err := engine.TraverseCollecting(c.Request.Context(), h.pool, req.Binding, engine.TraverseOptions{
		StartIDs:       req.StartIDs,
		Direction:      req.direction(),
		MaxDepth:       req.MaxDepth,
		ExcludedNodes:  req.ExcludedNodes,
		SkipEstimation: req.SkipEstimation,
	}, h.limits, req.TargetCondition)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
