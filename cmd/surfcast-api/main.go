package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"surfcast-api/configs"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/resource"
)

// @title Surfcast API
// @version 1.0
// @description Saved surf locations with merged marine, weather, tide and surf forecasts.
// @BasePath /surfcast
func main() {
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// rootCmd serves the API when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   configs.Env.ApplicationName,
	Short: "Surf forecast service for saved locations",
	Long: `Keeps a list of saved surf locations and their hourly forecast,
merged from marine, atmospheric, tide and surf rating providers.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetLevel(resource.GetString("app.log.level"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, refreshCmd, classifyCmd)
}
