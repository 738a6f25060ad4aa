// Package api provides HTTP handlers for the VG core read-only query
// surface: one endpoint per engine operation, each resolving a schema
// binding from the request body rather than any server-side ontology
// state.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/virtgraph/vgcore/internal/httputil"
	"github.com/virtgraph/vgcore/internal/metrics"
	"github.com/virtgraph/vgcore/internal/vgerrors"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest    = "invalid_request"
	ErrCodeInvalidIdentifier = "invalid_identifier"
	ErrCodeSafetyLimit       = "safety_limit_exceeded"
	ErrCodeSubgraphTooLarge  = "subgraph_too_large"
	ErrCodeQueryTimeout      = "query_timeout"
	ErrCodeInternalError     = "internal_error"
)

// respondError writes a standardized JSON error response, pulling the
// request ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondEngineError maps a vgerrors sentinel to its HTTP status and code,
// per spec's taxonomy: InvalidIdentifier->400, SafetyLimitExceeded/
// SubgraphTooLarge->413, QueryTimeout->504, everything else (StoreError)
// ->500.
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, vgerrors.ErrInvalidIdentifier):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidIdentifier, err.Error())
	case errors.Is(err, vgerrors.ErrSafetyLimitExceeded):
		respondError(c, http.StatusRequestEntityTooLarge, ErrCodeSafetyLimit, err.Error())
	case errors.Is(err, vgerrors.ErrSubgraphTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, ErrCodeSubgraphTooLarge, err.Error())
	case errors.Is(err, vgerrors.ErrQueryTimeout):
		respondError(c, http.StatusGatewayTimeout, ErrCodeQueryTimeout, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
