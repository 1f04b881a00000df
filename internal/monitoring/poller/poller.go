// Package poller runs the fetch-evaluate-notify cycle on a fixed interval.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pkolbas/gonka-notifier/internal/core/domain"
	"github.com/pkolbas/gonka-notifier/internal/monitoring/alerting"
	"github.com/pkolbas/gonka-notifier/internal/monitoring/health"
	"github.com/pkolbas/gonka-notifier/internal/monitoring/metrics"
)

// ReportFetcher fetches one snapshot of the node's health checks.
type ReportFetcher interface {
	Fetch(ctx context.Context) (*domain.Report, error)
}

// WeightFetcher fetches the current epoch's validator weight table.
type WeightFetcher interface {
	FetchEpochGroupData(ctx context.Context) (*domain.EpochGroupData, error)
}

// Notifier delivers one alert text; failures are logged by the poller and
// never retried.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Poller drives the monitor. One cycle runs to completion before the next
// tick is honoured, so cycles never overlap and the tracker needs no
// locking. The weight sub-check is best-effort and isolated from the report
// path: its failures are logged, never alerted.
type Poller struct {
	interval  time.Duration
	reports   ReportFetcher
	weights   WeightFetcher // nil when no participant is configured
	notifier  Notifier
	tracker   *alerting.Tracker
	healthMon *health.Monitor

	running atomic.Bool
	stop    chan struct{}
	log     *slog.Logger
}

// New creates a poller. weights may be nil to disable the weight sub-check.
func New(
	interval time.Duration,
	reports ReportFetcher,
	weights WeightFetcher,
	notifier Notifier,
	tracker *alerting.Tracker,
	healthMon *health.Monitor,
) *Poller {
	return &Poller{
		interval:  interval,
		reports:   reports,
		weights:   weights,
		notifier:  notifier,
		tracker:   tracker,
		healthMon: healthMon,
		stop:      make(chan struct{}),
		log:       slog.Default(),
	}
}

// Start begins the poll loop. The first cycle runs immediately; afterwards
// one cycle per tick. Start returns when the context is cancelled or Stop
// is called.
func (p *Poller) Start(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return fmt.Errorf("poller already running")
	}
	defer p.running.Store(false)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.stop:
			return nil
		case <-ticker.C:
			p.runCycle(ctx)
		}
	}
}

// Stop stops the poll loop.
func (p *Poller) Stop() error {
	if p.running.Load() {
		close(p.stop)
	}
	return nil
}

// runCycle executes one fetch-evaluate-notify pass. The report path and the
// weight path fail independently; neither aborts the other or the loop.
func (p *Poller) runCycle(ctx context.Context) {
	start := time.Now()
	p.log.Debug("Checking status...")

	err := p.checkReport(ctx)
	if err != nil {
		// One synthetic alert per failed cycle; the next tick is the
		// retry mechanism.
		p.log.Error("Report check failed", "error", err)
		p.send(ctx, domain.NewAlert(domain.ScriptErrorCheck,
			fmt.Sprintf("[%s] %v", domain.ScriptErrorCheck, err)))
	}

	if p.weights != nil {
		if werr := p.checkWeights(ctx); werr != nil {
			p.log.Warn("Confirmation weight check failed", "error", werr)
		}
	}

	metrics.CyclesTotal.Inc()
	if err != nil {
		metrics.CyclesFailed.Inc()
	}
	metrics.CycleDuration.Observe(time.Since(start).Seconds())
	metrics.TrackedChecks.Set(float64(p.tracker.TrackedChecks()))
	p.healthMon.RecordCycle(err)
}

func (p *Poller) checkReport(ctx context.Context) error {
	report, err := p.reports.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch report: %w", err)
	}

	for _, alert := range p.tracker.EvaluateChecks(report) {
		p.send(ctx, alert)
	}
	if pct := p.tracker.LastSentMissedPct(); pct != nil {
		metrics.LastMissedPct.Set(*pct)
	}
	return nil
}

func (p *Poller) checkWeights(ctx context.Context) error {
	data, err := p.weights.FetchEpochGroupData(ctx)
	if err != nil {
		return fmt.Errorf("fetch epoch group data: %w", err)
	}

	for _, alert := range p.tracker.EvaluateWeights(data) {
		p.send(ctx, alert)
	}
	if w := p.tracker.LastConfirmationWeight(); w != nil {
		metrics.LastConfirmationWeight.Set(float64(*w))
	}
	return nil
}

// send delivers one alert, best-effort. There is no fallback channel, so a
// delivery failure is logged and dropped.
func (p *Poller) send(ctx context.Context, alert domain.Alert) {
	if err := p.notifier.Send(ctx, alert.Text); err != nil {
		metrics.NotifyFailures.Inc()
		p.log.Error("Failed to send alert", "alert", alert.ID, "check", alert.Check, "error", err)
		return
	}
	metrics.AlertsSent.WithLabelValues(alert.Check).Inc()
	p.log.Info("Alert sent", "alert", alert.ID, "check", alert.Check)
}
