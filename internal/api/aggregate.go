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

// AggregateHandler serves the path-aggregate endpoint.
type AggregateHandler struct {
	pool   *dbconn.Pool
	limits safety.Limits
	log    *logrus.Logger
}

// NewAggregateHandler creates an AggregateHandler.
func NewAggregateHandler(pool *dbconn.Pool, limits safety.Limits, log *logrus.Logger) *AggregateHandler {
	return &AggregateHandler{pool: pool, limits: limits, log: log}
}

type pathAggregateRequest struct {
	sqlbuilder.Binding `json:",inline"`
	Start              any    `json:"start"`
	ValueCol           string `json:"value_col"`
	Operation          string `json:"operation"`
	MaxDepth           int    `json:"max_depth"`
}

// PathAggregate handles POST /v1/path-aggregate.
func (h *AggregateHandler) PathAggregate(c *gin.Context) {
	var req pathAggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	result, err := engine.PathAggregate(c.Request.Context(), h.pool, req.Binding, h.limits, engine.PathAggregateOptions{
		Start:     req.Start,
		ValueCol:  req.ValueCol,
		Operation: engine.Operation(req.Operation),
		MaxDepth:  req.MaxDepth,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
