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
	"framelink/pkg/panel"
	"framelink/pkg/transport"
	"framelink/pkg/transport/ws"

	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Connect to the host and log context events",
	Long:  "Connects to the configured host transport, runs the context controller, and logs every lifecycle event until interrupted.",
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

		log, pnl := withPanel(appLogger, cfg)
		slog.SetDefault(log)
		log = log.With("component", "cmd.listen")

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
		subscribeEventLog(ctrl, log)

		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Hook registration must precede the read loop so no frame drops.
		ctrl.Init()

		log.Info("Listening for host context", "url", cfg.Transport.URL, "open_policy", len(cfg.Bridge.AllowedInboxIDs) == 0)
		if err := runAdapter(runCtx, adapter, log); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Transport failed", "error", err)
		}

		if pnl != nil {
			fmt.Println(pnl.Render())
		}
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

// runAdapter drives one host connection until the context ends.
func runAdapter(ctx context.Context, adapter transport.Adapter, log *slog.Logger) error {
	log.Info("Host transport starting", "transport", adapter.Name())
	return adapter.Run(ctx)
}

// withPanel tees logs into the diagnostic panel when debug mode names one.
func withPanel(appLogger *slog.Logger, cfg *config.Config) (*slog.Logger, *panel.Panel) {
	if !cfg.Bridge.Debug || cfg.Panel.ID == "" {
		return appLogger, nil
	}
	pnl := panel.New(cfg.Panel.ID, cfg.Panel.MaxEntries)
	return slog.New(panel.Tee(appLogger.Handler(), pnl)), pnl
}

// subscribeEventLog mirrors every controller event into the log stream.
func subscribeEventLog(ctrl *bridge.Controller, log *slog.Logger) {
	ctrl.On(bridge.EventContextReady, func(ev bridge.Event) {
		id, _ := ev.Context.Conversation.ID()
		log.Info("Context ready", "conversation_id", id, "contact", ev.Context.Contact.Name())
	})
	ctrl.On(bridge.EventContextUpdated, func(ev bridge.Event) {
		id, _ := ev.Context.Conversation.ID()
		log.Info("Context updated", "conversation_id", id, "status", ev.Context.Conversation.Status(), "agent", ev.Context.Agent.Name())
	})
	ctrl.On(bridge.EventInboxBlocked, func(ev bridge.Event) {
		log.Warn("Context blocked", "inbox_id", ev.Blocked.InboxID, "allowed_ids", ev.Blocked.AllowedIDs)
	})
	ctrl.On(bridge.EventContextTimeout, func(bridge.Event) {
		log.Warn("No context received before timeout")
	})
	ctrl.On(bridge.EventRawMessage, func(bridge.Event) {
		log.Debug("Raw host message received")
	})
}
