// Package alerting decides which observations turn into notifications.
//
// The Tracker is the only stateful piece of the monitor. It folds each poll
// snapshot into three independent pieces of prior-cycle state:
//
//   - a per-check status table, driving edge-triggered alerts: a check
//     alerts when it transitions into non-PASS and stays quiet while the
//     condition persists, until a PASS is seen in between
//   - the last *sent* missed-request percentage, driving monotone
//     hysteresis: only escalations beyond the last reported level surface
//   - the last confirmation weight and epoch index, reset across epoch
//     boundaries where weight comparisons stop being meaningful
//
// Each piece is updated only at the point its own notification decision is
// made, so a failure in one rule never leaves another inconsistent. All
// state is process-memory only and owned by a single poller goroutine;
// cycles are strictly sequential, so there is no locking here.
package alerting

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/pkolbas/gonka-notifier/internal/core/domain"
)

const (
	missedRequestsCheck = "missed_requests_threshold"
	weightCheck         = "confirmation_weight"
	mlnodePrefix        = "mlnode_"
)

// Config controls evaluation behaviour.
type Config struct {
	// IgnoredChecks are known-flaky check ids that are skipped entirely:
	// no alert, no state.
	IgnoredChecks []string
	// MissedPctThreshold is the missed-request percentage below which no
	// alert is ever considered.
	MissedPctThreshold float64
	// PctDecimals is the rounding precision applied to every percentage
	// before comparison, so float jitter beyond it cannot re-trigger.
	PctDecimals int
	// ParticipantAddress selects the entry to watch in the epoch weight
	// table. Empty disables the weight rule.
	ParticipantAddress string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		IgnoredChecks:      []string{"consensus_key_match", "validator_in_set"},
		MissedPctThreshold: 3.0,
		PctDecimals:        2,
	}
}

// Tracker holds the prior-cycle state the evaluation rules compare against.
type Tracker struct {
	cfg     Config
	ignored map[string]struct{}

	statuses          map[string]string // check id -> last observed status
	lastSentMissedPct *float64          // rounded; replaced only when an alert went out
	lastWeight        *int64
	lastEpoch         *uint64

	log *slog.Logger
}

// NewTracker creates a tracker with empty prior state.
func NewTracker(cfg Config) *Tracker {
	ignored := make(map[string]struct{}, len(cfg.IgnoredChecks))
	for _, id := range cfg.IgnoredChecks {
		ignored[id] = struct{}{}
	}
	return &Tracker{
		cfg:      cfg,
		ignored:  ignored,
		statuses: make(map[string]string),
		log:      slog.Default(),
	}
}

// EvaluateChecks folds one report snapshot into the tracker and returns the
// alerts it warrants, in check order.
func (t *Tracker) EvaluateChecks(report *domain.Report) []domain.Alert {
	var alerts []domain.Alert
	for _, check := range report.Checks {
		if check.ID == "" {
			continue
		}
		if _, skip := t.ignored[check.ID]; skip {
			continue
		}

		// Missed requests have their own rule and never touch the
		// status table.
		if check.ID == missedRequestsCheck {
			if alert := t.evaluateMissedPct(check); alert != nil {
				alerts = append(alerts, *alert)
			}
			continue
		}

		if !check.Passed() {
			prev, seen := t.statuses[check.ID]
			// Unknown is not yet a problem: only the transition
			// into non-PASS fires.
			if !seen || prev == domain.StatusPass {
				alerts = append(alerts, domain.NewAlert(check.ID, formatCheckAlert(check)))
			}
		}
		t.statuses[check.ID] = check.Status
	}
	return alerts
}

func formatCheckAlert(check domain.CheckResult) string {
	if strings.HasPrefix(check.ID, mlnodePrefix) {
		node := check.Details.Str("id")
		if node == "" {
			node = strings.TrimPrefix(check.ID, mlnodePrefix)
		}
		host := check.Details.StrOr("unknown-host", "host")
		return fmt.Sprintf("[%s] ML node problem on %s/%s: %s", check.ID, host, node, check.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", check.ID, check.Status, check.Message)
}

// evaluateMissedPct applies the threshold-plus-hysteresis rule. Values below
// the threshold leave the tracker untouched, so a transient dip never resets
// the baseline; at or above it, only a rounded value strictly greater than
// the last sent one fires. The sequence of sent percentages is therefore
// strictly increasing for the process lifetime.
func (t *Tracker) evaluateMissedPct(check domain.CheckResult) *domain.Alert {
	details := check.Details
	missed, missedOK := details.Float("missed_requests")
	total, totalOK := details.Float("total_requests")

	pctRaw, ok := details.Float("missed_percentage")
	if !ok && missedOK && totalOK && total != 0 {
		pctRaw = missed / total * 100
		ok = true
	}
	if !ok {
		return nil
	}

	pct := roundTo(pctRaw, t.cfg.PctDecimals)
	threshold := roundTo(t.cfg.MissedPctThreshold, t.cfg.PctDecimals)
	if pct < threshold {
		return nil
	}
	if t.lastSentMissedPct != nil && pct <= *t.lastSentMissedPct {
		return nil
	}

	text := fmt.Sprintf("[%s] Missed%% increased: %s -> %s (missed=%s, total=%s, threshold=%s)",
		missedRequestsCheck,
		t.fmtPct(t.lastSentMissedPct),
		t.fmtPct(&pct),
		fmtCount(missed, missedOK),
		fmtCount(total, totalOK),
		t.fmtPct(&threshold),
	)
	t.lastSentMissedPct = &pct
	alert := domain.NewAlert(missedRequestsCheck, text)
	return &alert
}

// EvaluateWeights compares the participant's confirmation weight against the
// previous observation within the same epoch. An absent participant is a
// silent no-op; it simply was not elected this epoch.
func (t *Tracker) EvaluateWeights(data *domain.EpochGroupData) []domain.Alert {
	entry, ok := data.Find(t.cfg.ParticipantAddress)
	if !ok {
		return nil
	}

	if t.lastEpoch == nil || *t.lastEpoch != data.EpochIndex {
		if t.lastEpoch != nil {
			t.log.Info("Epoch changed, resetting confirmation weight baseline",
				"from", *t.lastEpoch, "to", data.EpochIndex)
		}
		t.lastWeight = nil
	}

	var alerts []domain.Alert
	if t.lastWeight != nil && entry.ConfirmationWeight < *t.lastWeight {
		delta := entry.ConfirmationWeight - *t.lastWeight
		pctChange := 0.0
		if *t.lastWeight != 0 {
			pctChange = float64(delta) / float64(*t.lastWeight) * 100
		}
		share := 0.0
		if data.TotalWeight != 0 {
			share = float64(entry.ConfirmationWeight) / float64(data.TotalWeight) * 100
		}
		text := fmt.Sprintf("[%s] Confirmation weight decreased: %d -> %d (%+.1f%%), share of total weight %.1f%% (epoch %d)",
			weightCheck, *t.lastWeight, entry.ConfirmationWeight, pctChange, share, data.EpochIndex)
		alerts = append(alerts, domain.NewAlert(weightCheck, text))
	}

	weight := entry.ConfirmationWeight
	epoch := data.EpochIndex
	t.lastWeight = &weight
	t.lastEpoch = &epoch
	return alerts
}

// TrackedChecks returns the number of check ids in the status table.
func (t *Tracker) TrackedChecks() int {
	return len(t.statuses)
}

// LastSentMissedPct returns the last alerted missed percentage, nil before
// the first alert.
func (t *Tracker) LastSentMissedPct() *float64 {
	return t.lastSentMissedPct
}

// LastConfirmationWeight returns the last observed confirmation weight, nil
// before the first observation in the current epoch.
func (t *Tracker) LastConfirmationWeight() *int64 {
	return t.lastWeight
}

func (t *Tracker) fmtPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f%%", t.cfg.PctDecimals, *v)
}

func fmtCount(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
