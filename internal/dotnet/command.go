package dotnet

import (
	"github.com/harrison/dotnet-test/internal/models"
)

// Runner arguments. The orchestrator runs its own clean/restore/build step,
// so every test invocation skips both.
const (
	DefaultExecutable = "dotnet"
	testVerb          = "test"
	noBuildFlag       = "--no-build"
	noRestoreFlag     = "--no-restore"
	filterFlag        = "--filter"
)

// DefaultCoverageArgs enables coverlet collection in OpenCover format.
var DefaultCoverageArgs = []string{
	"-p:CollectCoverage=true",
	"-p:CoverletOutputFormat=opencover",
}

// CommandBuilder assembles `dotnet test` invocations.
type CommandBuilder struct {
	Executable   string   // Build tool executable (default "dotnet")
	CoverageArgs []string // Arguments injected when coverage is requested
}

// NewCommandBuilder creates a CommandBuilder, falling back to defaults for
// an empty executable or nil coverage arguments.
func NewCommandBuilder(executable string, coverageArgs []string) *CommandBuilder {
	if executable == "" {
		executable = DefaultExecutable
	}
	if coverageArgs == nil {
		coverageArgs = DefaultCoverageArgs
	}
	return &CommandBuilder{
		Executable:   executable,
		CoverageArgs: coverageArgs,
	}
}

// Build returns the test command for run. Argument order is fixed:
// base flags, coverage flags, filter, then the project path (per-project
// mode only). The runner ignores coverage flags placed after the path.
// The filter is passed through verbatim as a single argument.
func (b *CommandBuilder) Build(run models.RunConfiguration, target *models.TestTarget) models.Command {
	args := []string{testVerb, noBuildFlag, noRestoreFlag}

	if run.WithCoverage {
		args = append(args, b.CoverageArgs...)
	}

	if run.HasFilter() {
		args = append(args, filterFlag, run.Filter)
	}

	if run.ByProject() && target != nil {
		args = append(args, target.ProjectPath)
	}

	return models.Command{Executable: b.Executable, Args: args}
}

// Preflight returns the clean, restore and build commands for solutionPath,
// in the order they must run.
func (b *CommandBuilder) Preflight(solutionPath string) []models.Command {
	return []models.Command{
		{Executable: b.Executable, Args: []string{"clean", solutionPath}},
		{Executable: b.Executable, Args: []string{"restore", solutionPath}},
		{Executable: b.Executable, Args: []string{"build", solutionPath, noRestoreFlag}},
	}
}
