package dbconn_test

import (
	"context"
	"os"
	"testing"

	"github.com/virtgraph/vgcore/internal/dbconn"
)

var sharedPool *dbconn.Pool

// getTestPool returns a shared pool against TEST_DATABASE_URL, skipping
// the calling test when it is unset.
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

func TestPool_HealthCheck(t *testing.T) {
	pool := getTestPool(t)

	if err := pool.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() = %v, want nil", err)
	}
}

func TestPool_BeginReadOnly(t *testing.T) {
	pool := getTestPool(t)

	tx, err := pool.BeginReadOnly(context.Background())
	if err != nil {
		t.Fatalf("BeginReadOnly() = %v, want nil", err)
	}

	defer tx.Rollback(context.Background()) //nolint:errcheck // best-effort rollback after a read-only probe.

	var result int
	if err := tx.QueryRow(context.Background(), "SELECT 1").Scan(&result); err != nil {
		t.Fatalf("querying inside read-only tx: %v", err)
	}

	if result != 1 {
		t.Errorf("result = %d, want 1", result)
	}
}
