package enums

// RunStatus summarizes one file-processing run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "Success"
	RunStatusPartial RunStatus = "Partial"
	RunStatusFailed  RunStatus = "Failed"
)

// String implements fmt.Stringer.
func (s RunStatus) String() string {
	return string(s)
}

// RunStatusFor derives the run status from the per-row counters.
func RunStatusFor(successful, failed int) RunStatus {
	switch {
	case failed == 0:
		return RunStatusSuccess
	case successful > 0:
		return RunStatusPartial
	default:
		return RunStatusFailed
	}
}
