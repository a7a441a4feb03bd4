package executor

import (
	"github.com/harrison/dotnet-test/internal/models"
)

// Aggregate summarizes invocation results. It is pure: failures keep their
// input order and the same input always yields the same summary.
//
// The overall exit code is 0 when nothing failed and 1 otherwise, except
// for a single per-solution invocation, whose own exit status is
// propagated (128+n for signal n).
func Aggregate(results []models.InvocationResult) models.RunSummary {
	summary := models.RunSummary{
		TotalInvocations: len(results),
		Failed:           []models.InvocationResult{},
		Results:          append([]models.InvocationResult{}, results...),
	}

	for _, result := range results {
		if result.Failed() {
			summary.Failed = append(summary.Failed, result)
		}
	}

	switch {
	case len(summary.Failed) == 0:
		summary.OverallExitCode = 0
	case len(results) == 1 && results[0].Target == nil:
		summary.OverallExitCode = results[0].ExitStatus()
		if summary.OverallExitCode == 0 {
			summary.OverallExitCode = 1
		}
	default:
		summary.OverallExitCode = 1
	}

	return summary
}

// Report logs one error block per failure, the CI table and summary line
// when CI mode applies, and the final status line.
func Report(log Logger, summary models.RunSummary, run models.RunConfiguration, solutionName string) {
	for _, result := range summary.Failed {
		log.LogFailure(result.Label(solutionName), result)
	}

	if run.CIMode && run.ByProject() {
		log.LogCISummary(summary)
	}

	log.LogSummary(summary, run.Mode)
}
