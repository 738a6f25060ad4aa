package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/virtgraph/vgcore/client"
)

func newTraverseCmd() *cobra.Command {
	var (
		direction string
		maxDepth  int
		excluded  string
	)

	cmd := &cobra.Command{
		Use:   "traverse <start-id> [start-id...]",
		Short: "Bounded BFS traversal from one or more start nodes",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := client.TraverseRequest{
				SchemaBinding: binding(),
				StartIDs:      toAnySlice(args),
				Direction:     direction,
				MaxDepth:      maxDepth,
				ExcludedNodes: toAnySlice(splitNonEmpty(excluded)),
			}

			result, err := apiClient.Traverse.Traverse(context.Background(), req)
			if err != nil {
				fatal("traverse", err)
			}

			output(result)
		},
	}

	cmd.Flags().StringVar(&direction, "direction", "outbound", "outbound|inbound|both")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum traversal depth (0 visits only the start nodes)")
	cmd.Flags().StringVar(&excluded, "excluded", "", "comma-separated node ids to exclude")

	return cmd
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}

	var out []string

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}

	return out
}

func toAnySlice(ss []string) []any {
	if ss == nil {
		return nil
	}

	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}
