package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"surfcast-api/internal/domain/forecast"
	"surfcast-api/pkg/util/numberutils"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <wind-direction> <shore-perpendicular>",
	Short: "Classify a wind bearing as offshore, cross-shore or onshore",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wind, err := numberutils.ToFloat64WithError(args[0])
		if err != nil {
			return err
		}
		perpendicular, err := numberutils.ToFloat64WithError(args[1])
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), forecast.ClassifyWind(wind, perpendicular))
		return err
	},
}
