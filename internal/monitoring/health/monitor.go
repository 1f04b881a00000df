package health

import (
	"sync"
	"time"
)

// Monitor records the outcome of each poll cycle and derives an overall
// status from recency and consecutive failures. It only observes; alert
// semantics live in the tracker, not here.
type Monitor struct {
	mu                  sync.RWMutex
	interval            time.Duration
	cycles              uint64
	lastRun             time.Time
	lastSuccess         time.Time
	lastErr             string
	consecutiveFailures int
}

// NewMonitor creates a monitor calibrated to the poll interval.
func NewMonitor(interval time.Duration) *Monitor {
	return &Monitor{interval: interval}
}

// RecordCycle records one completed cycle. err is the report-check outcome;
// weight and notify failures are deliberately not counted here.
func (m *Monitor) RecordCycle(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cycles++
	m.lastRun = time.Now()
	if err != nil {
		m.consecutiveFailures++
		m.lastErr = err.Error()
		return
	}
	m.consecutiveFailures = 0
	m.lastErr = ""
	m.lastSuccess = m.lastRun
}

// Status derives the current health: critical after 3 consecutive failures
// or 5 intervals without a success, degraded when the last cycle failed or
// the next one is overdue, healthy otherwise.
func (m *Monitor) Status() SystemStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statusLocked(time.Now())
}

func (m *Monitor) statusLocked(now time.Time) SystemStatus {
	if m.cycles == 0 {
		// Still starting; the first cycle has not completed yet.
		return StatusHealthy
	}
	if m.consecutiveFailures >= 3 {
		return StatusCritical
	}
	if !m.lastSuccess.IsZero() && now.Sub(m.lastSuccess) > 5*m.interval {
		return StatusCritical
	}
	if m.consecutiveFailures > 0 {
		return StatusDegraded
	}
	if now.Sub(m.lastRun) > 2*m.interval {
		return StatusDegraded
	}
	return StatusHealthy
}

// CheckHealth returns the detailed report.
func (m *Monitor) CheckHealth() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Report{
		Status:              m.statusLocked(time.Now()),
		Cycles:              m.cycles,
		LastRun:             m.lastRun,
		LastSuccess:         m.lastSuccess,
		ConsecutiveFailures: m.consecutiveFailures,
		LastError:           m.lastErr,
	}
}
