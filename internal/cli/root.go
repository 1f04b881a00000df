package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/pkolbas/gonka-notifier/internal/control"
	"github.com/pkolbas/gonka-notifier/internal/core/config"
	"github.com/spf13/cobra"
	"github.com/vietddude/stylelog"
)

var (
	cfgPath string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "gonka-notifier",
	Short: "Gonka validator node monitor",
	Long:  `gonka-notifier polls a Gonka validator node's health report and sends Telegram alerts on state transitions.`,
	Run:   runMonitor,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file (default is config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

func runMonitor(cmd *cobra.Command, args []string) {
	_ = godotenv.Load()

	// Load Configuration
	cfg, err := config.Load(cfgPath)
	if err != nil {
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	slogLevel := slog.LevelInfo
	if isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	stylelog.InitDefault(&tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
	})

	// Transform config
	controlCfg := control.Config{
		APIServer:          cfg.Node.Host,
		AdminPort:          cfg.Node.AdminPort,
		BotToken:           cfg.Telegram.BotToken,
		ChatID:             cfg.Telegram.ChatID,
		ChainAPIURL:        cfg.Chain.APIURL,
		ParticipantAddress: cfg.Chain.Participant,
		MissedPctThreshold: cfg.Alerts.MissedPctThreshold,
		PctDecimals:        cfg.Alerts.PctDecimals,
		IgnoredChecks:      cfg.Alerts.IgnoredChecks,
		Interval:           cfg.Monitor.Interval.Std(),
		OpsPort:            cfg.Server.Port,
	}

	// Initialize Monitor
	app, err := control.NewMonitor(controlCfg)
	if err != nil {
		slog.Error("Failed to initialize monitor", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if err := app.Start(ctx); err != nil {
		slog.Error("Failed to start monitor", "error", err)
		os.Exit(1)
	}

	sig := <-sigChan
	slog.Info("Received signal, shutting down...", "signal", sig)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Monitor stopped gracefully")
}
