package dbconn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/virtgraph/vgcore/internal/dbconn"
	"github.com/virtgraph/vgcore/internal/vgerrors"
)

func TestMapError_Nil(t *testing.T) {
	if err := dbconn.MapError("query", nil); err != nil {
		t.Fatalf("MapError(nil) = %v, want nil", err)
	}
}

func TestMapError_DeadlineExceeded(t *testing.T) {
	err := dbconn.MapError("query", context.DeadlineExceeded)

	if !errors.Is(err, vgerrors.ErrQueryTimeout) {
		t.Fatalf("MapError(DeadlineExceeded) = %v, want ErrQueryTimeout", err)
	}
}

func TestMapError_PgQueryCanceled(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}

	err := dbconn.MapError("query", pgErr)

	if !errors.Is(err, vgerrors.ErrQueryTimeout) {
		t.Fatalf("MapError(57014) = %v, want ErrQueryTimeout", err)
	}
}

func TestMapError_OtherPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}

	err := dbconn.MapError("insert", pgErr)

	if !errors.Is(err, vgerrors.ErrStoreError) {
		t.Fatalf("MapError(23505) = %v, want ErrStoreError", err)
	}

	if errors.Is(err, vgerrors.ErrQueryTimeout) {
		t.Fatalf("MapError(23505) should not be a query timeout")
	}
}

func TestMapError_GenericError(t *testing.T) {
	underlying := errors.New("connection reset by peer")

	err := dbconn.MapError("query", underlying)

	if !errors.Is(err, vgerrors.ErrStoreError) {
		t.Fatalf("MapError(generic) = %v, want ErrStoreError", err)
	}

	if !errors.Is(err, underlying) {
		t.Fatalf("MapError(generic) should still wrap the underlying error")
	}
}
