package models

// RunMode selects how the external runner is invoked for a run.
type RunMode int

const (
	// ModePerSolution issues a single invocation covering the whole solution.
	ModePerSolution RunMode = iota
	// ModePerProject invokes the runner once per discovered test project, sequentially.
	ModePerProject
)

// String returns the string representation of RunMode.
func (m RunMode) String() string {
	switch m {
	case ModePerSolution:
		return "per-solution"
	case ModePerProject:
		return "per-project"
	default:
		return "unknown"
	}
}

// RunConfiguration holds the options for one orchestrator invocation.
// It is built once from parsed CLI input and passed by value afterwards.
type RunConfiguration struct {
	Mode         RunMode // Per-project or per-solution
	SkipClean    bool    // Skip the clean/restore/build pre-flight step
	WithCoverage bool    // Inject coverage-collection arguments
	Filter       string  // Test filter expression, empty when absent
	CIMode       bool    // Emit the CI aggregate failure summary
}

// HasFilter returns true if a filter expression was supplied.
func (c RunConfiguration) HasFilter() bool {
	return c.Filter != ""
}

// ByProject returns true if the run invokes the runner once per project.
func (c RunConfiguration) ByProject() bool {
	return c.Mode == ModePerProject
}
