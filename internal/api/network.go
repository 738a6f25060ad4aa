package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/engine"
	"github.com/virtgraph/vgcore/internal/safety"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

// NetworkHandler serves the connected-components, degree-centrality, and
// resilience-analysis endpoints.
type NetworkHandler struct {
	pool   *dbconn.Pool
	limits safety.Limits
	log    *logrus.Logger
}

// NewNetworkHandler creates a NetworkHandler.
func NewNetworkHandler(pool *dbconn.Pool, limits safety.Limits, log *logrus.Logger) *NetworkHandler {
	return &NetworkHandler{pool: pool, limits: limits, log: log}
}

// bindingFromQuery reads the schema binding fields from query parameters —
// GET endpoints have no body, so the binding travels as a flat query string.
func bindingFromQuery(c *gin.Context) sqlbuilder.Binding {
	return sqlbuilder.Binding{
		NodesTable:    c.Query("nodes_table"),
		EdgesTable:    c.Query("edges_table"),
		FromCol:       c.Query("edge_from_col"),
		ToCol:         c.Query("edge_to_col"),
		PKCol:         c.Query("node_pk_col"),
		WeightCol:     c.Query("weight_col"),
		SoftDeleteCol: c.Query("soft_delete_col"),
		OrderBy:       c.Query("order_by"),
	}
}

// Components handles GET /v1/network/components.
func (h *NetworkHandler) Components(c *gin.Context) {
	b := bindingFromQuery(c)

	maxNodes := h.limits.MaxNodes
	if raw := c.Query("max_nodes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "max_nodes must be a positive integer")
			return
		}

		maxNodes = n
	}

	components, err := engine.ConnectedComponents(c.Request.Context(), h.pool, b, h.limits, maxNodes)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"components": components})
}

// Centrality handles GET /v1/network/centrality.
func (h *NetworkHandler) Centrality(c *gin.Context) {
	b := bindingFromQuery(c)

	raw := c.Query("node_ids")
	if raw == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "node_ids is required")
		return
	}

	parts := strings.Split(raw, ",")
	nodeIDs := make([]any, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			nodeIDs = append(nodeIDs, p)
		}
	}

	degrees, err := engine.DegreeCentrality(c.Request.Context(), h.pool, b, nodeIDs)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"degrees": degrees})
}

type resilienceRequest struct {
	sqlbuilder.Binding `json:",inline"`
	RemovedNode        any `json:"removed_node"`
	MaxDepth           int `json:"max_depth"`
}

// Resilience handles POST /v1/network/resilience.
func (h *NetworkHandler) Resilience(c *gin.Context) {
	var req resilienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	maxDepth := req.MaxDepth
	if maxDepth <= 0 {
		maxDepth = h.limits.MaxDepth
	}

	result, err := engine.ResilienceAnalysis(c.Request.Context(), h.pool, req.Binding, h.limits, req.RemovedNode, maxDepth)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
