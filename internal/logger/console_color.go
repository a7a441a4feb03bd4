package logger

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/harrison/dotnet-test/internal/models"
	"github.com/harrison/dotnet-test/internal/testparser"
)

// colorScheme defines consistent colors for invocation statuses.
// Green: passed
// Red: failed or killed
type colorScheme struct {
	success *color.Color
	fail    *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
	}
}

// statusText returns the status column value for one invocation.
func statusText(result models.InvocationResult, scheme *colorScheme) string {
	status := "PASSED"
	switch {
	case result.SpawnErr != nil:
		status = "NOT STARTED"
	case result.Signaled():
		status = "KILLED"
	case result.Failed():
		status = "FAILED"
	}
	if scheme == nil {
		return status
	}
	if status == "PASSED" {
		return scheme.success.Sprint(status)
	}
	return scheme.fail.Sprint(status)
}

// renderResultsTable renders one row per invocation with test counts parsed
// from the runner's captured output. Counts show "-" when no summary was found.
func renderResultsTable(summary models.RunSummary, colored bool) string {
	var buf bytes.Buffer
	var scheme *colorScheme
	if colored {
		scheme = newColorScheme()
	}

	t := table.NewWriter()
	t.SetOutputMirror(&buf)
	t.SetTitle("Test Project Results")
	t.AppendHeader(table.Row{"PROJECT", "STATUS", "EXIT", "PASSED", "FAILED", "SKIPPED", "DURATION"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "PROJECT", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
		{Name: "EXIT", Align: text.AlignRight},
		{Name: "PASSED", Align: text.AlignRight},
		{Name: "FAILED", Align: text.AlignRight},
		{Name: "SKIPPED", Align: text.AlignRight},
		{Name: "DURATION", Align: text.AlignRight},
	})

	var totals testparser.TestCounts
	for _, result := range summary.Results {
		counts := testparser.ParseDotnet(string(result.Stdout))
		totals.Add(&counts)
		t.AppendRow(table.Row{
			projectName(result),
			statusText(result, scheme),
			exitColumn(result),
			countColumn(counts, counts.Passed),
			countColumn(counts, counts.Failed),
			countColumn(counts, counts.Skipped),
			formatDuration(result.Duration),
		})
	}

	overall := "PASSED"
	if !summary.Succeeded() {
		overall = "FAILED"
	}
	t.AppendFooter(table.Row{
		"TOTAL",
		overall,
		"",
		countColumn(totals, totals.Passed),
		countColumn(totals, totals.Failed),
		countColumn(totals, totals.Skipped),
		"",
	})

	if colored {
		if summary.Succeeded() {
			t.SetStyle(table.StyleColoredBlackOnGreenWhite)
		} else {
			t.SetStyle(table.StyleColoredBlackOnRedWhite)
		}
	} else {
		t.SetStyle(table.StyleLight)
	}

	t.Render()
	return buf.String()
}

func projectName(result models.InvocationResult) string {
	if result.Target == nil {
		return "solution"
	}
	return result.Target.ProjectPath
}

func exitColumn(result models.InvocationResult) string {
	switch {
	case result.ExitCode != nil:
		return fmt.Sprintf("%d", *result.ExitCode)
	case result.Signaled():
		return fmt.Sprintf("%d", result.ExitStatus())
	default:
		return "-"
	}
}

func countColumn(counts testparser.TestCounts, n int) string {
	if !counts.Parsed {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
