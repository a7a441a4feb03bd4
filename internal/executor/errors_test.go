package executor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/dotnet-test/internal/dotnet"
	"github.com/harrison/dotnet-test/internal/filelock"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "configuration",
			err:  NewConfigurationError("failed to locate solution", dotnet.ErrSolutionNotFound),
			want: "configuration error: failed to locate solution: solution file not found",
		},
		{
			name: "discovery without cause",
			err:  &DiscoveryError{Dir: "/src", Pattern: "**/*.Tests.csproj"},
			want: `discovery error: no test projects matching "**/*.Tests.csproj" under /src`,
		},
		{
			name: "discovery with cause",
			err:  &DiscoveryError{Dir: "/src", Pattern: "*.csproj", Err: dotnet.ErrNoTestProjects},
			want: "discovery error: searching /src: no test projects found",
		},
		{
			name: "preflight",
			err:  &PreflightError{Step: "build", ExitStatus: 1, Outcome: "exit code 1"},
			want: "preflight error: dotnet build failed (exit code 1)",
		},
		{
			name: "lock",
			err:  &LockError{Path: "/src/.dotnet-test.lock"},
			want: "lock error: another dotnet-test run holds /src/.dotnet-test.lock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	lockErr := fmt.Errorf("%w: /src/.dotnet-test.lock", filelock.ErrLocked)

	assert.ErrorIs(t, NewConfigurationError("x", dotnet.ErrSolutionNotFound), dotnet.ErrSolutionNotFound)
	assert.ErrorIs(t, &DiscoveryError{Err: dotnet.ErrNoTestProjects}, dotnet.ErrNoTestProjects)
	assert.ErrorIs(t, &LockError{Err: lockErr}, filelock.ErrLocked)
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"configuration", NewConfigurationError("x", nil), 1},
		{"wrapped preflight", fmt.Errorf("run: %w", &PreflightError{Step: "clean"}), 1},
		{"lock", &LockError{}, 1},
		{"custom exit coder", exitCodeError{code: 42}, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewConfigurationError("inner", nil))

	assert.True(t, IsConfigurationError(wrapped))
	assert.False(t, IsConfigurationError(errors.New("other")))
	assert.False(t, IsConfigurationError(nil))
	assert.True(t, IsDiscoveryError(&DiscoveryError{}))
	assert.False(t, IsDiscoveryError(wrapped))
}

type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return "exit" }
func (e exitCodeError) ExitCode() int { return e.code }
