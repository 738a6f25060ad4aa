package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virtgraph/vgcore/internal/migrations"
)

// newDemoCmd applies the demo BOM and facility/route schemas directly
// against a database, bypassing vgserve entirely. It never runs
// implicitly — a caller must set TEST_DATABASE_URL or pass --database-url.
func newDemoCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Apply the demo BOM and facility/route schemas to a database",
		Long: "Runs the goose migrations in internal/migrations against the given " +
			"database, seeding the diamond BOM example and the weighted facility/route " +
			"example used throughout this project's integration tests.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("TEST_DATABASE_URL")
			}

			if databaseURL == "" {
				return fmt.Errorf("--database-url or TEST_DATABASE_URL is required")
			}

			log := logrus.New()

			return migrations.Run(context.Background(), databaseURL, log)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "Postgres connection string (env: TEST_DATABASE_URL)")

	return cmd
}
