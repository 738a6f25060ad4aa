package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check vgserve liveness",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}

			output(result)
		},
	}
}
