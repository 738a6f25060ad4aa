// Package migrations also provides the goose-backed migration runner for
// the demo schemas: a BOM schema for diamond-aggregation scenarios and a
// facility/route schema for weighted-pathfinding scenarios.
//
// Migration runner using goose (github.com/pressly/goose/v3), grounded on
// the same rationale as the teacher's: a single provider with no separate
// source/database drivers, up/down migrations sharing one file, and native
// embed.FS support.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

// Run applies every pending migration embedded in FS against databaseURL.
// goose needs a *sql.DB, so this opens one directly via the pgx stdlib
// driver rather than reusing the engine's pgxpool-backed Pool.
func Run(ctx context.Context, databaseURL string, log *logrus.Logger) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening sql.DB for migrations: %w", err)
	}
	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, FS)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	for _, r := range results {
		if r.Error != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", r.Source.Version, r.Source.Path, r.Error)
		}

		if log != nil {
			log.WithFields(logrus.Fields{
				"version":  r.Source.Version,
				"file":     r.Source.Path,
				"duration": r.Duration,
			}).Info("migration applied")
		}
	}

	if len(results) == 0 && log != nil {
		log.Debug("all migrations already applied")
	}

	return nil
}
