package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/virtgraph/vgcore/internal/vgerrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordEngineError(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondEngineError(c, err)

	return w
}

func TestRespondEngineError_MapsTaxonomyToStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid identifier", vgerrors.NewInvalidIdentifier("nodes_table", "drop table"), http.StatusBadRequest},
		{"safety limit", vgerrors.NewSafetyLimit("max_depth", 99, 50), http.StatusRequestEntityTooLarge},
		{"subgraph too large", vgerrors.NewSubgraphTooLarge(20000, 10000), http.StatusRequestEntityTooLarge},
		{"query timeout", vgerrors.ErrQueryTimeout, http.StatusGatewayTimeout},
		{"store error", vgerrors.ErrStoreError, http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			w := recordEngineError(tc.err)
			if w.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}
