package engine_test

import (
	"context"
	"os"
	"testing"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/sqlbuilder"
)

var sharedPool *dbconn.Pool

// getTestPool returns a shared pool against TEST_DATABASE_URL, skipping
// the calling test when it is unset. The pool is expected to point at a
// database migrated with the BOM demo schema (internal/migrations), seeded
// with the R/A/B/X diamond: R->A(qty2), R->B(qty3), A->X(qty5), B->X(qty4).
func getTestPool(t *testing.T) *dbconn.Pool {
	t.Helper()

	if sharedPool != nil {
		return sharedPool
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := dbconn.NewPool(context.Background(), dbURL, dbconn.DefaultConfig())
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	sharedPool = pool

	return sharedPool
}

// bomBinding binds the BOM demo schema's parts/bill_of_materials tables.
func bomBinding() sqlbuilder.Binding {
	return sqlbuilder.Binding{
		NodesTable: "parts",
		EdgesTable: "bill_of_materials",
		FromCol:    "parent_id",
		ToCol:      "child_id",
		WeightCol:  "quantity",
	}
}

// facilityBinding binds the facility/route demo schema, seeded with two
// routes of equal hop count but different distance between DC1 and
// STORE1: DC1->HUB1->STORE1 (55km) and DC1->HUB2->STORE1 (70km).
func facilityBinding() sqlbuilder.Binding {
	return sqlbuilder.Binding{
		NodesTable: "facilities",
		EdgesTable: "transport_routes",
		FromCol:    "origin_id",
		ToCol:      "destination_id",
		WeightCol:  "distance_km",
	}
}
