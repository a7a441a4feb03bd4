package cmd

import (
	"github.com/spf13/cobra"

	"github.com/harrison/dotnet-test/internal/executor"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for dotnet-test
func NewRootCommand() *cobra.Command {
	return newRootCommand(executor.NewExecRunner(""))
}

func newRootCommand(runner executor.ProcessRunner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dotnet-test [flags] [filter...]",
		Short: "Run dotnet test across a solution or per test project",
		Long: `dotnet-test locates the solution in or below the working directory,
cleans, restores and builds it, then runs the test suite.

By default the whole solution is tested in one interactive dotnet test
invocation and its exit status is propagated. With --by-project every test
project (**/*.Test*.csproj) is run on its own, in order; failures are
collected and reported together once all projects have run.

Trailing arguments are joined with a single space and passed to
dotnet test as one --filter expression.

Configuration is loaded from .dotnet-test/config.yaml if present.
CLI flags override configuration file settings.

Runs on the same solution are serialized through a .dotnet-test.lock file
created next to the solution. The file is left in place between runs; add
it to .gitignore, or set lock: false in the config to disable locking.

Examples:
  dotnet-test                                  # whole solution
  dotnet-test --by-project --ci                # per project, CI summary
  dotnet-test -s FullyQualifiedName~Parser     # skip clean/build, filtered
  dotnet-test --coverage "Category=Unit"       # collect coverage
  dotnet-test --log-dir ./logs --by-project    # also write a run log`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd, args, runner)
		},
	}

	cmd.Flags().Bool("by-project", false, "Run each test project separately and report failures together")
	cmd.Flags().Bool("coverage", false, "Collect code coverage")
	cmd.Flags().BoolP("skip-clean", "s", false, "Skip the clean, restore and build step")
	cmd.Flags().Bool("ci", false, "Print a results table and failure count (with --by-project)")
	cmd.Flags().String("solution", "", "Solution file to test (default: search the working directory)")
	cmd.Flags().String("dotnet", "", "dotnet executable (default: dotnet)")
	cmd.Flags().String("config", "", "Path to config file (default: .dotnet-test/config.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Also write a plain-text run log to this directory")
	cmd.Flags().Bool("verbose", false, "Shorthand for --log-level debug")

	return cmd
}
