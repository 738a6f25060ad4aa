package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/virtgraph/vgcore/client"
)

func newShortestPathCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "shortest-path <start-id> <end-id>",
		Short: "Find the shortest path between two nodes",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.ShortestPathRequest{
				SchemaBinding: binding(),
				Start:         args[0],
				End:           args[1],
			}

			if all {
				result, err := apiClient.Graph.AllShortestPaths(context.Background(), client.AllShortestPathsRequest{ShortestPathRequest: req})
				if err != nil {
					fatal("shortest-path --all", err)
				}

				output(result)

				return
			}

			result, err := apiClient.Graph.ShortestPath(context.Background(), req)
			if err != nil {
				fatal("shortest-path", err)
			}

			output(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "enumerate every shortest path, not just one")

	return cmd
}

func newPathAggregateCmd() *cobra.Command {
	var (
		valueCol  string
		operation string
		maxDepth  int
	)

	cmd := &cobra.Command{
		Use:   "path-aggregate <start-id>",
		Short: "Aggregate a value column across every path from a start node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.PathAggregateRequest{
				SchemaBinding: binding(),
				Start:         args[0],
				ValueCol:      valueCol,
				Operation:     operation,
				MaxDepth:      maxDepth,
			}

			result, err := apiClient.Graph.PathAggregate(context.Background(), req)
			if err != nil {
				fatal("path-aggregate", err)
			}

			output(result)
		},
	}

	cmd.Flags().StringVar(&valueCol, "value-col", "", "edge column to aggregate")
	cmd.Flags().StringVar(&operation, "operation", "sum", "sum|multiply|max|min|count")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum traversal depth (0 returns an empty result)")

	return cmd
}
