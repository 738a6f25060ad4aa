package dbconn

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/virtgraph/vgcore/internal/vgerrors"
)

// postgres error code for a statement cancelled by statement_timeout.
const pgQueryCanceled = "57014"

// MapError translates a store-reported error into the engine's error
// taxonomy: a postgres statement-timeout or a context deadline becomes
// vgerrors.ErrQueryTimeout; anything else becomes a wrapped
// vgerrors.ErrStoreError. Returns nil if err is nil.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return vgerrors.ErrQueryTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgQueryCanceled {
		return vgerrors.ErrQueryTimeout
	}

	return vgerrors.NewStoreError(op, err)
}
