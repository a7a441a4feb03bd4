package models

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunMode_String(t *testing.T) {
	assert.Equal(t, "per-solution", ModePerSolution.String())
	assert.Equal(t, "per-project", ModePerProject.String())
	assert.Equal(t, "unknown", RunMode(42).String())
}

func TestRunConfiguration_ZeroValue(t *testing.T) {
	var cfg RunConfiguration

	assert.False(t, cfg.ByProject(), "zero value should run per solution")
	assert.False(t, cfg.HasFilter())

	cfg.Filter = "FullyQualifiedName~Core"
	assert.True(t, cfg.HasFilter())
}

func TestTestTarget_Name(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"Example.Core.Tests.csproj", "Example.Core.Tests"},
		{"src/Example.Api.Test/Example.Api.Test.csproj", "Example.Api.Test"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, TestTarget{ProjectPath: tt.path}.Name())
		})
	}
}

func TestCommand_Argv(t *testing.T) {
	cmd := Command{Executable: "dotnet", Args: []string{"test", "--no-build"}}

	assert.Equal(t, []string{"dotnet", "test", "--no-build"}, cmd.Argv())
	assert.Equal(t, []string{"test", "--no-build"}, cmd.Args, "Argv must not modify Args")
}

func TestInvocationResult_Classification(t *testing.T) {
	tests := []struct {
		name       string
		result     InvocationResult
		wantFailed bool
		wantStatus int
		wantSignal bool
	}{
		{
			name:       "exit zero",
			result:     InvocationResult{ExitCode: ExitCodeOf(0)},
			wantFailed: false,
			wantStatus: 0,
		},
		{
			name:       "exit one",
			result:     InvocationResult{ExitCode: ExitCodeOf(1)},
			wantFailed: true,
			wantStatus: 1,
		},
		{
			name:       "signal termination",
			result:     InvocationResult{Signal: syscall.Signal(15)},
			wantFailed: true,
			wantStatus: 143,
			wantSignal: true,
		},
		{
			name:       "spawn failure",
			result:     InvocationResult{SpawnErr: errors.New("executable file not found")},
			wantFailed: true,
			wantStatus: 1,
		},
		{
			name:       "no exit code and no signal",
			result:     InvocationResult{},
			wantFailed: true,
			wantStatus: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantFailed, tt.result.Failed())
			assert.Equal(t, tt.wantStatus, tt.result.ExitStatus())
			assert.Equal(t, tt.wantSignal, tt.result.Signaled())
		})
	}
}

func TestInvocationResult_Outcome(t *testing.T) {
	assert.Equal(t, "exit code 0", InvocationResult{ExitCode: ExitCodeOf(0)}.Outcome())
	assert.Equal(t, "exit code 2", InvocationResult{ExitCode: ExitCodeOf(2)}.Outcome())
	assert.Equal(t, "failed to start: boom", InvocationResult{SpawnErr: errors.New("boom")}.Outcome())
	assert.Contains(t, InvocationResult{Signal: syscall.Signal(9)}.Outcome(), "signal ")
	assert.Equal(t, "unknown exit status", InvocationResult{}.Outcome())
}

func TestInvocationResult_Label(t *testing.T) {
	perProject := InvocationResult{Target: &TestTarget{ProjectPath: "a/A.Tests.csproj"}}
	perSolution := InvocationResult{}

	assert.Equal(t, "a/A.Tests.csproj", perProject.Label("Example.sln"))
	assert.Equal(t, "Example.sln", perSolution.Label("Example.sln"))
}

func TestRunSummary_Succeeded(t *testing.T) {
	assert.True(t, RunSummary{TotalInvocations: 2}.Succeeded())
	assert.False(t, RunSummary{TotalInvocations: 2, Failed: []InvocationResult{{}}, OverallExitCode: 1}.Succeeded())
}
