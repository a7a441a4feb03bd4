package executor

import (
	"context"
	"fmt"

	"github.com/harrison/dotnet-test/internal/dotnet"
	"github.com/harrison/dotnet-test/internal/models"
)

// RunPreflight cleans, restores and builds the solution, streaming output
// live. It stops at the first step that fails and returns a PreflightError.
func RunPreflight(ctx context.Context, runner ProcessRunner, builder *dotnet.CommandBuilder, solutionPath string, log Logger) error {
	for _, cmd := range builder.Preflight(solutionPath) {
		if err := ctx.Err(); err != nil {
			return err
		}

		step := preflightStep(cmd)
		log.LogInfo(fmt.Sprintf("Running %s", dotnet.Describe(cmd)))

		result := runner.RunInteractive(ctx, cmd)
		if !result.Failed() {
			log.LogDebug(fmt.Sprintf("dotnet %s finished in %s", step, result.Duration))
			continue
		}

		return &PreflightError{
			Step:       step,
			ExitStatus: result.ExitStatus(),
			Outcome:    result.Outcome(),
			Err:        result.SpawnErr,
		}
	}

	return nil
}

func preflightStep(cmd models.Command) string {
	if len(cmd.Args) == 0 {
		return cmd.Executable
	}
	return cmd.Args[0]
}
