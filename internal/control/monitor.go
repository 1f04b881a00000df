// Package control assembles and runs the monitor's components.
package control

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkolbas/gonka-notifier/internal/infra/chainapi"
	"github.com/pkolbas/gonka-notifier/internal/infra/report"
	"github.com/pkolbas/gonka-notifier/internal/infra/telegram"
	"github.com/pkolbas/gonka-notifier/internal/monitoring/alerting"
	"github.com/pkolbas/gonka-notifier/internal/monitoring/health"
	"github.com/pkolbas/gonka-notifier/internal/monitoring/poller"
)

// requestTimeout bounds every upstream HTTP call so a hung endpoint cannot
// stall the cycle.
const requestTimeout = 10 * time.Second

// Config holds the application configuration.
type Config struct {
	APIServer          string
	AdminPort          int
	BotToken           string
	ChatID             string
	ChainAPIURL        string
	ParticipantAddress string
	MissedPctThreshold float64
	PctDecimals        int
	IgnoredChecks      []string
	Interval           time.Duration
	OpsPort            int
}

// Monitor is the main application struct that manages the poller lifecycle.
type Monitor struct {
	cfg          Config
	poller       *poller.Poller
	healthMon    *health.Monitor
	healthServer *health.Server
	log          *slog.Logger
}

// NewMonitor creates a Monitor with all dependencies wired.
func NewMonitor(cfg Config) (*Monitor, error) {
	reportClient := report.NewClient(cfg.APIServer, cfg.AdminPort, requestTimeout)
	notifier := telegram.NewBotNotifier(cfg.BotToken, cfg.ChatID, requestTimeout)

	tracker := alerting.NewTracker(alerting.Config{
		IgnoredChecks:      cfg.IgnoredChecks,
		MissedPctThreshold: cfg.MissedPctThreshold,
		PctDecimals:        cfg.PctDecimals,
		ParticipantAddress: cfg.ParticipantAddress,
	})

	// The weight sub-check only runs when both the chain API and a
	// participant address are configured.
	var weights poller.WeightFetcher
	if cfg.ChainAPIURL != "" && cfg.ParticipantAddress != "" {
		weights = chainapi.NewClient(cfg.ChainAPIURL, requestTimeout)
		slog.Info("Confirmation weight check enabled", "participant", cfg.ParticipantAddress)
	}

	healthMon := health.NewMonitor(cfg.Interval)
	healthServer := health.NewServer(healthMon, cfg.OpsPort)

	p := poller.New(cfg.Interval, reportClient, weights, notifier, tracker, healthMon)

	return &Monitor{
		cfg:          cfg,
		poller:       p,
		healthMon:    healthMon,
		healthServer: healthServer,
		log:          slog.Default(),
	}, nil
}

// Start starts the ops server and the poll loop.
func (m *Monitor) Start(ctx context.Context) error {
	go func() {
		if err := m.healthServer.Start(); err != nil {
			m.log.Error("Ops server failed", "error", err)
		}
	}()

	go func() {
		if err := m.poller.Start(ctx); err != nil {
			m.log.Error("Poller failed", "error", err)
		}
	}()

	m.log.Info("Monitor started",
		"node", m.cfg.APIServer,
		"interval", m.cfg.Interval,
		"ops_port", m.cfg.OpsPort,
	)
	return nil
}

// Stop stops the poller and shuts the ops server down.
func (m *Monitor) Stop(ctx context.Context) error {
	m.log.Info("Stopping monitor...")

	if err := m.poller.Stop(); err != nil {
		m.log.Warn("Failed to stop poller", "error", err)
	}

	return m.healthServer.Stop(ctx)
}
