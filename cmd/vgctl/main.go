// Command vgctl is a thin CLI client for a running vgserve instance.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/virtgraph/vgcore/client"
)

// Build-time variables set via ldflags.
var (
	version   = "0.1.0"
	commit    = ""
	buildDate = ""
)

var (
	apiClient *client.Client
	flagURL   string

	flagNodesTable    string
	flagEdgesTable    string
	flagFromCol       string
	flagToCol         string
	flagPKCol         string
	flagWeightCol     string
	flagSoftDeleteCol string
	flagOrderBy       string
)

func versionString() string {
	if commit != "" && buildDate != "" {
		return fmt.Sprintf("vgctl version %s (commit: %s, built: %s)", version, commit, buildDate)
	}

	return fmt.Sprintf("vgctl version %s-dev", version)
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "vgctl",
		Short:   "vgctl — query a Virtual Graph core deployment from the command line",
		Version: versionString(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagURL == "" {
				flagURL = envOrDefault("VGCORE_URL", "http://localhost:8080")
			}

			apiClient = client.New(flagURL)
		},
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "vgserve URL (env: VGCORE_URL, default http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&flagNodesTable, "nodes-table", "", "nodes table name")
	rootCmd.PersistentFlags().StringVar(&flagEdgesTable, "edges-table", "", "edges table name")
	rootCmd.PersistentFlags().StringVar(&flagFromCol, "from-col", "", "edge from-column name")
	rootCmd.PersistentFlags().StringVar(&flagToCol, "to-col", "", "edge to-column name")
	rootCmd.PersistentFlags().StringVar(&flagPKCol, "pk-col", "id", "node primary key column name")
	rootCmd.PersistentFlags().StringVar(&flagWeightCol, "weight-col", "", "edge weight column name")
	rootCmd.PersistentFlags().StringVar(&flagSoftDeleteCol, "soft-delete-col", "", "soft-delete column name, if any")
	rootCmd.PersistentFlags().StringVar(&flagOrderBy, "order-by", "", "tie-break ordering column")

	rootCmd.AddCommand(newTraverseCmd())
	rootCmd.AddCommand(newShortestPathCmd())
	rootCmd.AddCommand(newPathAggregateCmd())
	rootCmd.AddCommand(newNetworkCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newDemoCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func binding() client.SchemaBinding {
	return client.SchemaBinding{
		NodesTable:    flagNodesTable,
		EdgesTable:    flagEdgesTable,
		FromCol:       flagFromCol,
		ToCol:         flagToCol,
		PKCol:         flagPKCol,
		WeightCol:     flagWeightCol,
		SoftDeleteCol: flagSoftDeleteCol,
		OrderBy:       flagOrderBy,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}
