package executor

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports a run that cannot start: no solution file,
// an unreadable configuration, or an invalid option.
type ConfigurationError struct {
	Message string
	Err     error
}

// NewConfigurationError creates a ConfigurationError.
func NewConfigurationError(msg string, err error) *ConfigurationError {
	return &ConfigurationError{Message: msg, Err: err}
}

func (e *ConfigurationError) Error() string {
	return joinMessage("configuration error", e.Message, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error.
func (e *ConfigurationError) ExitCode() int { return 1 }

// DiscoveryError reports a per-project run that found no test projects.
type DiscoveryError struct {
	Dir     string // Directory that was searched
	Pattern string // Project file pattern used
	Err     error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return joinMessage("discovery error", "searching "+e.Dir, e.Err)
	}
	return joinMessage("discovery error", fmt.Sprintf("no test projects matching %q under %s", e.Pattern, e.Dir), nil)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error.
func (e *DiscoveryError) ExitCode() int { return 1 }

// PreflightError reports a failed clean, restore or build step. The run
// aborts before any test invocation.
type PreflightError struct {
	Step       string // clean, restore or build
	ExitStatus int    // Exit status of the failed step
	Outcome    string // How the step ended, e.g. "exit code 1"
	Err        error  // Spawn error, if the step could not start
}

func (e *PreflightError) Error() string {
	return joinMessage("preflight error", fmt.Sprintf("dotnet %s failed (%s)", e.Step, e.Outcome), e.Err)
}

func (e *PreflightError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error.
func (e *PreflightError) ExitCode() int { return 1 }

// LockError reports that another run holds the solution's run lock.
type LockError struct {
	Path string
	Err  error
}

func (e *LockError) Error() string {
	return joinMessage("lock error", fmt.Sprintf("another dotnet-test run holds %s", e.Path), e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code for this error.
func (e *LockError) ExitCode() int { return 1 }

// ExitCoder is implemented by errors that carry a process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// ExitCodeFor returns the exit code carried by err, 1 for any other
// non-nil error and 0 for nil.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return 1
}

// IsConfigurationError checks if the error is or wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsDiscoveryError checks if the error is or wraps a DiscoveryError.
func IsDiscoveryError(err error) bool {
	var de *DiscoveryError
	return errors.As(err, &de)
}

func joinMessage(kind, msg string, err error) string {
	var sb strings.Builder
	sb.WriteString(kind)
	if msg != "" {
		sb.WriteString(": ")
		sb.WriteString(msg)
	}
	if err != nil {
		sb.WriteString(": ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
