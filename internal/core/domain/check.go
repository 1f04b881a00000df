package domain

// StatusPass is the only status value that means a check is healthy. Any
// other string is treated as an opaque failure state.
const StatusPass = "PASS"

// CheckResult is one named health indicator from the node's setup report.
// It exists only within the snapshot it arrived in.
type CheckResult struct {
	ID      string  `json:"id"`
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Details Details `json:"details"`
}

// Passed reports whether the check's status is PASS.
func (c CheckResult) Passed() bool {
	return c.Status == StatusPass
}

// Report is one fetch of the setup report, checks in upstream order.
type Report struct {
	Checks []CheckResult `json:"checks"`
}
