package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Network-analysis commands",
	}
	cmd.AddCommand(newComponentsCmd())
	cmd.AddCommand(newCentralityCmd())
	cmd.AddCommand(newResilienceCmd())

	return cmd
}

func newComponentsCmd() *cobra.Command {
	var maxNodes int

	cmd := &cobra.Command{
		Use:   "components",
		Short: "List connected components",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Network.Components(context.Background(), binding(), maxNodes)
			if err != nil {
				fatal("network components", err)
			}

			output(result)
		},
	}

	cmd.Flags().IntVar(&maxNodes, "max-nodes", 0, "maximum nodes to scan (0 = server default)")

	return cmd
}

func newCentralityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "centrality <node-id> [node-id...]",
		Short: "Report degree centrality for a set of nodes",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Network.Centrality(context.Background(), binding(), args)
			if err != nil {
				fatal("network centrality", err)
			}

			output(result)
		},
	}

	return cmd
}

func newResilienceCmd() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "resilience <removed-node-id>",
		Short: "Report which nodes become unreachable if a node is removed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Network.Resilience(context.Background(), binding(), args[0], maxDepth)
			if err != nil {
				fatal("network resilience", err)
			}

			output(result)
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum traversal depth (0 = server default)")

	return cmd
}
