// Package health tracks poll-cycle outcomes and serves the ops endpoints.
package health

import "time"

// SystemStatus represents the overall health state of the monitor.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// Report is the detailed health view served over HTTP.
type Report struct {
	Status              SystemStatus `json:"status"`
	Cycles              uint64       `json:"cycles"`
	LastRun             time.Time    `json:"last_run"`
	LastSuccess         time.Time    `json:"last_success"`
	ConsecutiveFailures int          `json:"consecutive_failures"`
	LastError           string       `json:"last_error,omitempty"`
}
