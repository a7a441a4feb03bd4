package models

import (
	"fmt"
	"syscall"
	"time"
)

// InvocationResult is the outcome of one external runner invocation.
// It is created by the process runner and never mutated afterwards.
type InvocationResult struct {
	Target   *TestTarget    // Originating project, nil in per-solution mode
	Command  Command        // Command that was run
	ExitCode *int           // Exit code, nil when the process did not exit normally
	Signal   syscall.Signal // Terminating signal, 0 when not signaled
	SpawnErr error          // Set when the process could not be started
	Stdout   []byte         // Captured standard output (empty for interactive runs)
	Stderr   []byte         // Captured standard error (empty for interactive runs)
	Duration time.Duration  // Wall time of the invocation
}

// Failed returns true for a non-zero exit, a signal termination or a spawn failure.
func (r InvocationResult) Failed() bool {
	if r.SpawnErr != nil || r.ExitCode == nil {
		return true
	}
	return *r.ExitCode != 0
}

// Signaled returns true if the process was terminated by a signal.
func (r InvocationResult) Signaled() bool {
	return r.ExitCode == nil && r.Signal != 0
}

// ExitStatus maps the result to a process exit status.
// Signal terminations map to 128+signal, spawn failures to 1.
func (r InvocationResult) ExitStatus() int {
	switch {
	case r.ExitCode != nil:
		return *r.ExitCode
	case r.Signal != 0:
		return 128 + int(r.Signal)
	default:
		return 1
	}
}

// Outcome describes how the invocation ended, e.g. "exit code 1",
// "signal SIGTERM" or "failed to start: ...".
func (r InvocationResult) Outcome() string {
	switch {
	case r.SpawnErr != nil:
		return fmt.Sprintf("failed to start: %v", r.SpawnErr)
	case r.ExitCode != nil:
		return fmt.Sprintf("exit code %d", *r.ExitCode)
	case r.Signal != 0:
		return fmt.Sprintf("signal %s", signalName(r.Signal))
	default:
		return "unknown exit status"
	}
}

// Label names the originating target; per-solution results use the solution name.
func (r InvocationResult) Label(solution string) string {
	if r.Target != nil {
		return r.Target.ProjectPath
	}
	return solution
}

// ExitCodeOf returns a pointer to code, for building results.
func ExitCodeOf(code int) *int {
	return &code
}

// RunSummary is the aggregate result of a run; it drives the process exit.
type RunSummary struct {
	TotalInvocations int                // Number of runner invocations
	Failed           []InvocationResult // Failed invocations, in input order
	OverallExitCode  int                // 0 iff Failed is empty
	Results          []InvocationResult // All invocations, in input order
}

// Succeeded returns true if no invocation failed.
func (s RunSummary) Succeeded() bool {
	return len(s.Failed) == 0
}
