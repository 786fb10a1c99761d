package main

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [location-id]",
	Short: "Refresh one location, or every stale location when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newContainer(ctx)
		if err != nil {
			return err
		}
		defer c.Close()

		out := json.NewEncoder(cmd.OutOrStdout())
		out.SetIndent("", "  ")

		if len(args) == 1 {
			refreshed, err := c.weatherUseCase.RefreshLocation(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to refresh location %s: %w", args[0], err)
			}
			return out.Encode(refreshed)
		}

		requestID := uuid.NewString()
		result, err := c.weatherUseCase.RefreshAllStale(ctx, requestID)
		if err != nil {
			return err
		}
		return out.Encode(result)
	},
}
