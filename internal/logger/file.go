package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/google/uuid"

	"github.com/harrison/dotnet-test/internal/models"
	"github.com/harrison/dotnet-test/internal/testparser"
)

// LatestLogName is the symlink kept pointing at the most recent run log.
const LatestLogName = "latest.log"

// FileLogger mirrors run events into plain-text files under a log directory.
// Each run gets a timestamped run-YYYYMMDD-HHMMSS.log, captured output of
// each project goes to projects/<name>.log (<name>-2.log and so on when two
// projects share a name), and latest.log points at the newest run. ANSI escape codes are stripped from everything written.
type FileLogger struct {
	logDir      string
	runLog      *os.File
	runFile     string
	projectsDir string
	runID       string
	logLevel    string
	usedNames   map[string]bool
	mu          sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a new run log
// and repoints latest.log at it.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	projectsDir := filepath.Join(logDir, "projects")
	if err := os.MkdirAll(projectsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create projects directory: %w", err)
	}

	started := time.Now()
	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", started.Format("20060102-150405")))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, LatestLogName)
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:      logDir,
		runLog:      file,
		runFile:     runFile,
		projectsDir: projectsDir,
		runID:       uuid.NewString(),
		logLevel:    normalizeLogLevel(logLevel),
		usedNames:   make(map[string]bool),
	}

	fl.writeRunLog("=== dotnet-test Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", fl.runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", started.Format(time.RFC3339)))

	return fl, nil
}

// RunID returns the identifier written into the run log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// RunFile returns the path of this run's log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format("15:04:05"), level, message))
}

// LogProgress records how many projects have finished.
func (fl *FileLogger) LogProgress(done, total int) {
	fl.LogInfo(fmt.Sprintf("Progress: %d/%d projects", done, total))
}

// LogInvocationOutput writes the invocation's command and captured streams
// to projects/<name>.log and notes the outcome in the run log.
func (fl *FileLogger) LogInvocationOutput(result models.InvocationResult) {
	name := "solution"
	if result.Target != nil {
		name = result.Target.Name()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("=== %s ===\n", name))
	sb.WriteString(fmt.Sprintf("Command: %s\n", strings.Join(result.Command.Argv(), " ")))
	sb.WriteString(fmt.Sprintf("Outcome: %s\n", result.Outcome()))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", formatDuration(result.Duration)))
	if len(result.Stdout) > 0 {
		sb.WriteString("\n--- stdout ---\n")
		sb.WriteString(ensureNewline(string(result.Stdout)))
	}
	if len(result.Stderr) > 0 {
		sb.WriteString("\n--- stderr ---\n")
		sb.WriteString(ensureNewline(string(result.Stderr)))
	}

	projectFile := filepath.Join(fl.projectsDir, fl.claimFileName(sanitizeFileName(name))+".log")
	if err := os.WriteFile(projectFile, []byte(stripansi.Strip(sb.String())), 0644); err != nil {
		fl.LogWarn(fmt.Sprintf("failed to write project log %s: %v", projectFile, err))
		return
	}
	fl.LogDebug(fmt.Sprintf("%s: %s (output in %s)", name, result.Outcome(), projectFile))
}

// LogFailure records the failure block for one invocation.
func (fl *FileLogger) LogFailure(label string, result models.InvocationResult) {
	if !fl.shouldLog("error") {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] [ERROR] Failed tests for %s (%s)\n", time.Now().Format("15:04:05"), label, result.Outcome()))
	for _, failed := range testparser.ParseDotnet(string(result.Stdout)).FailedTests {
		sb.WriteString(fmt.Sprintf("  - %s\n", failed.Name))
	}
	sb.WriteString(failureDetail(result))
	fl.writeRunLog(sb.String())
}

// LogCISummary writes the uncolored results table and the CI summary line.
func (fl *FileLogger) LogCISummary(summary models.RunSummary) {
	fl.writeRunLog("\n" + renderResultsTable(summary, false) + "\n")
	if summary.Succeeded() {
		fl.LogInfo(ciSummaryLine(summary))
	} else {
		fl.LogError(ciSummaryLine(summary))
	}
}

// LogSummary writes the final status line.
func (fl *FileLogger) LogSummary(summary models.RunSummary, mode models.RunMode) {
	if summary.Succeeded() {
		fl.LogInfo(finalSuccessLine(summary, mode))
		return
	}
	fl.LogError(finalFailureLine(summary, mode))
}

// writeRunLog writes to the run log with ANSI codes removed.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(stripansi.Strip(message))
	}
}

// Close closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	err := fl.runLog.Close()
	fl.runLog = nil
	return err
}

// claimFileName returns base the first time it is seen in this run and the
// first free base-N after that.
func (fl *FileLogger) claimFileName(base string) string {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	name := base
	for n := 2; fl.usedNames[name]; n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	fl.usedNames[name] = true
	return name
}

// sanitizeFileName replaces characters that are unsafe in file names.
func sanitizeFileName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return r.Replace(name)
}
