package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/dotnet-test/internal/models"
)

// fakeCall records one invocation made through FakeProcessRunner.
type fakeCall struct {
	Interactive bool
	Cmd         models.Command
	Dir         string // working directory at call time
}

// FakeProcessRunner implements ProcessRunner for testing. Results come from
// respond; by default every command exits 0.
type FakeProcessRunner struct {
	mu      sync.Mutex
	calls   []fakeCall
	respond func(cmd models.Command) models.InvocationResult
	onCall  func(n int)
}

func NewFakeProcessRunner() *FakeProcessRunner {
	return &FakeProcessRunner{}
}

// FailWhen makes commands whose argv contains substr end with result.
func (f *FakeProcessRunner) FailWhen(substr string, result models.InvocationResult) {
	prev := f.respond
	f.respond = func(cmd models.Command) models.InvocationResult {
		if strings.Contains(strings.Join(cmd.Argv(), " "), substr) {
			return result
		}
		if prev != nil {
			return prev(cmd)
		}
		return exited(0)
	}
}

func (f *FakeProcessRunner) RunSync(ctx context.Context, cmd models.Command) models.InvocationResult {
	return f.run(false, cmd)
}

func (f *FakeProcessRunner) RunInteractive(ctx context.Context, cmd models.Command) models.InvocationResult {
	return f.run(true, cmd)
}

func (f *FakeProcessRunner) run(interactive bool, cmd models.Command) models.InvocationResult {
	dir, _ := os.Getwd()

	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{Interactive: interactive, Cmd: cmd, Dir: dir})
	n := len(f.calls)
	respond := f.respond
	onCall := f.onCall
	f.mu.Unlock()

	if onCall != nil {
		onCall(n)
	}

	result := exited(0)
	if respond != nil {
		result = respond(cmd)
	}
	result.Command = cmd
	return result
}

// Calls returns all recorded invocations.
func (f *FakeProcessRunner) Calls() []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]fakeCall(nil), f.calls...)
}

// Verbs returns the first argument of each recorded command.
func (f *FakeProcessRunner) Verbs() []string {
	var verbs []string
	for _, c := range f.Calls() {
		verbs = append(verbs, c.Cmd.Args[0])
	}
	return verbs
}

func exited(code int) models.InvocationResult {
	return models.InvocationResult{ExitCode: models.ExitCodeOf(code)}
}

// recordingLogger implements Logger and records every call.
type recordingLogger struct {
	mu        sync.Mutex
	messages  []string
	failures  []string
	progress  []string
	outputs   int
	ciSummary []models.RunSummary
	summaries []models.RunSummary
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, level+": "+msg)
}

func (l *recordingLogger) LogDebug(message string) { l.record("DEBUG", message) }
func (l *recordingLogger) LogInfo(message string)  { l.record("INFO", message) }
func (l *recordingLogger) LogWarn(message string)  { l.record("WARN", message) }
func (l *recordingLogger) LogError(message string) { l.record("ERROR", message) }

func (l *recordingLogger) LogProgress(done, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress = append(l.progress, fmt.Sprintf("%d/%d", done, total))
}

func (l *recordingLogger) LogInvocationOutput(result models.InvocationResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.outputs++
}

func (l *recordingLogger) LogFailure(label string, result models.InvocationResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures = append(l.failures, label)
}

func (l *recordingLogger) LogCISummary(summary models.RunSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ciSummary = append(l.ciSummary, summary)
}

func (l *recordingLogger) LogSummary(summary models.RunSummary, mode models.RunMode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.summaries = append(l.summaries, summary)
}

// hasMessage reports whether a message at level containing substr was logged.
func (l *recordingLogger) hasMessage(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.messages {
		if strings.HasPrefix(m, level+": ") && strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

// writeFiles creates empty files at slash-separated paths under root.
func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}
}

// realPath resolves symlinks so temp directories compare equal on every OS.
func realPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
