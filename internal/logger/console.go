// Package logger provides logging implementations for dotnet-test runs.
//
// ConsoleLogger writes leveled, timestamped progress to the terminal and
// passes the external runner's captured output through untouched.
// FileLogger mirrors the same events into a plain-text run log.
// Both are safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/dotnet-test/internal/models"
	"github.com/harrison/dotnet-test/internal/testparser"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All log lines are prefixed with [HH:MM:SS] timestamps; captured runner
// output is written as-is. Color output is enabled for terminal output.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: IsTerminal(writer),
	}
}

// IsTerminal reports whether w is the process stdout or stderr attached to a
// color-capable terminal.
// NO_COLOR is honored through color.NoColor.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if f != os.Stdout && f != os.Stderr {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel logs a message at the specified level if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	cl.write(cl.formatLine(timestamp(), level, message))
}

// formatLine formats one log line, colored when writing to a terminal.
func (cl *ConsoleLogger) formatLine(ts, level, message string) string {
	if !cl.colorOutput {
		return fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	var coloredLevel string
	switch level {
	case "TRACE":
		coloredLevel = color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		coloredLevel = color.New(color.FgCyan).Sprint(level)
	case "INFO":
		coloredLevel = color.New(color.FgBlue).Sprint(level)
	case "WARN":
		coloredLevel = color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		coloredLevel = color.New(color.FgRed).Sprint(level)
		message = color.New(color.FgRed).Sprint(message)
	default:
		coloredLevel = level
	}
	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLevel, message)
}

func (cl *ConsoleLogger) write(s string) {
	cl.writer.Write([]byte(s))
}

// LogProgress logs per-project progress at INFO level.
// Format: "[HH:MM:SS] [INFO] Progress: [=====     ] 2/4 projects (50%)"
func (cl *ConsoleLogger) LogProgress(done, total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	pb := NewProgressBar(total, 10, "projects", cl.colorOutput)
	pb.Update(done)
	cl.LogInfo("Progress: " + pb.Render())
}

// LogInvocationOutput echoes the runner's captured standard output at INFO level.
// Interactive invocations have nothing captured and print nothing.
func (cl *ConsoleLogger) LogInvocationOutput(result models.InvocationResult) {
	if cl.writer == nil || !cl.shouldLog("info") || len(result.Stdout) == 0 {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	cl.write(ensureNewline(string(result.Stdout)))
}

// LogFailure prints the error block for one failed invocation: a header
// naming label, the failing test names found in its output, then the
// captured standard error (or the reason the process did not exit normally).
func (cl *ConsoleLogger) LogFailure(label string, result models.InvocationResult) {
	if cl.writer == nil || !cl.shouldLog("error") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	header := fmt.Sprintf("Failed tests for %s (%s)", label, result.Outcome())
	if cl.colorOutput {
		header = color.New(color.FgRed, color.Bold).Sprint(header)
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, strings.Repeat("-", 80)))
	sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, header))
	sb.WriteString(fmt.Sprintf("[%s] %s\n", ts, strings.Repeat("-", 80)))

	counts := testparser.ParseDotnet(string(result.Stdout))
	for _, failed := range counts.FailedTests {
		sb.WriteString(fmt.Sprintf("[%s]   - %s\n", ts, failed.Name))
	}

	sb.WriteString(failureDetail(result))
	cl.write(sb.String())
}

// failureDetail returns the captured stderr, or a note when there is none.
func failureDetail(result models.InvocationResult) string {
	if len(result.Stderr) > 0 {
		return ensureNewline(string(result.Stderr))
	}
	if result.SpawnErr != nil || result.Signaled() {
		return fmt.Sprintf("Exited with error '%s'\n", result.Outcome())
	}
	return "(no standard error output captured)\n"
}

// LogCISummary prints the per-project results table and the compact
// "K test projects failed out of N" line for CI log scraping.
func (cl *ConsoleLogger) LogCISummary(summary models.RunSummary) {
	if cl.writer == nil {
		return
	}

	cl.mutex.Lock()
	table := renderResultsTable(summary, cl.colorOutput)
	cl.write("\n" + table + "\n")
	cl.mutex.Unlock()

	line := ciSummaryLine(summary)
	if summary.Succeeded() {
		cl.LogInfo(line)
	} else {
		cl.LogError(line)
	}
}

// LogSummary prints the final status line: full success or the failing count.
func (cl *ConsoleLogger) LogSummary(summary models.RunSummary, mode models.RunMode) {
	if summary.Succeeded() {
		msg := finalSuccessLine(summary, mode)
		if cl.colorOutput {
			msg = color.New(color.FgGreen).Sprint(msg)
		}
		cl.LogInfo(msg)
		return
	}
	cl.LogError(finalFailureLine(summary, mode))
}

// ciSummaryLine formats the CI scrape line.
func ciSummaryLine(summary models.RunSummary) string {
	return fmt.Sprintf("%d test projects failed out of %d", len(summary.Failed), summary.TotalInvocations)
}

func finalSuccessLine(summary models.RunSummary, mode models.RunMode) string {
	if mode == models.ModePerProject {
		return fmt.Sprintf("Exited dotnet-test: all %d test projects passed", summary.TotalInvocations)
	}
	return "Exited dotnet-test: all tests passed"
}

func finalFailureLine(summary models.RunSummary, mode models.RunMode) string {
	if mode == models.ModePerProject {
		return fmt.Sprintf("Exited dotnet-test: %d test projects exited with non-zero exit status. See above output for more detail.", len(summary.Failed))
	}
	return fmt.Sprintf("Exited dotnet-test: test run failed with exit status %d. See above output for more detail.", summary.OverallExitCode)
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "850ms", "5s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d >= time.Hour:
		return d.Round(time.Second).String()
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	}
}

// NoOpLogger discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogDebug(message string)                                   {}
func (n *NoOpLogger) LogInfo(message string)                                    {}
func (n *NoOpLogger) LogWarn(message string)                                    {}
func (n *NoOpLogger) LogError(message string)                                   {}
func (n *NoOpLogger) LogProgress(done, total int)                               {}
func (n *NoOpLogger) LogInvocationOutput(result models.InvocationResult)        {}
func (n *NoOpLogger) LogFailure(label string, result models.InvocationResult)   {}
func (n *NoOpLogger) LogCISummary(summary models.RunSummary)                    {}
func (n *NoOpLogger) LogSummary(summary models.RunSummary, mode models.RunMode) {}
