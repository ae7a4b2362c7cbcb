package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"framelink/pkg/bridge"
	"framelink/pkg/config"
	"framelink/pkg/logger"
	"framelink/pkg/transport/ws"
	"framelink/pkg/ui/watch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live terminal view of host context events",
	Long:  "Connects to the configured host transport and shows the current context and event feed in an interactive terminal view.",
	Run: func(cmd *cobra.Command, args []string) {
		_ = args

		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("failed to load config: %v\n", err)
			return
		}

		appLogger, err := logger.New(cfg.Logging)
		if err != nil {
			fmt.Printf("failed to initialize logger: %v\n", err)
			return
		}
		slog.SetDefault(appLogger)
		log := appLogger.With("component", "cmd.watch")

		adapter, err := ws.NewAdapter(cfg.Transport, log)
		if err != nil {
			log.Error("Transport configuration invalid", "error", err)
			return
		}

		ctrl, err := bridge.NewController(cfg.Bridge, adapter, log)
		if err != nil {
			log.Error("Failed to initialize controller", "error", err)
			return
		}

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctrl.Init()

		transportErr := make(chan error, 1)
		go func() { transportErr <- runAdapter(runCtx, adapter, log) }()

		if err := watch.Run(runCtx, ctrl); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Watch view failed", "error", err)
		}
		stop()

		if err := <-transportErr; err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Transport failed", "error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
