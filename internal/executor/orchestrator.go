package executor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/harrison/dotnet-test/internal/dotnet"
	"github.com/harrison/dotnet-test/internal/filelock"
	"github.com/harrison/dotnet-test/internal/fileutil"
	"github.com/harrison/dotnet-test/internal/models"
)

// Logger is the logging surface the orchestrator reports through.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogProgress(done, total int)
	LogInvocationOutput(result models.InvocationResult)
	LogFailure(label string, result models.InvocationResult)
	LogCISummary(summary models.RunSummary)
	LogSummary(summary models.RunSummary, mode models.RunMode)
}

// State is the orchestrator's position in a run.
type State int

const (
	StateIdle State = iota
	StatePreflightCheck
	StateCleanBuildRestore
	StateDiscovering
	StateInvoking
	StateAggregating
	StateDone
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreflightCheck:
		return "preflight-check"
	case StateCleanBuildRestore:
		return "clean-build-restore"
	case StateDiscovering:
		return "discovering"
	case StateInvoking:
		return "invoking"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// OrchestratorConfig holds everything a run needs besides its collaborators.
type OrchestratorConfig struct {
	Run            models.RunConfiguration
	SearchDir      string // Where to look for a solution (empty = current dir)
	SolutionPath   string // Explicit solution file, skips the search
	SearchDepth    int    // Solution search depth, 0 = unlimited
	ProjectPattern string // Test project glob, empty = dotnet.DefaultProjectPattern
	Lock           bool   // Take the per-solution run lock
}

// Orchestrator drives one test run: locate the solution, optionally clean
// and build it, invoke the runner, then aggregate and report the results.
type Orchestrator struct {
	cfg     OrchestratorConfig
	builder *dotnet.CommandBuilder
	runner  ProcessRunner
	logger  Logger
	dirs    *fileutil.DirStack

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates a new Orchestrator. builder and runner are
// required; log may be nil.
func NewOrchestrator(cfg OrchestratorConfig, builder *dotnet.CommandBuilder, runner ProcessRunner, log Logger) *Orchestrator {
	if builder == nil {
		panic("command builder cannot be nil")
	}
	if runner == nil {
		panic("process runner cannot be nil")
	}
	if log == nil {
		log = nopLogger{}
	}
	if cfg.SearchDir == "" {
		cfg.SearchDir = "."
	}

	return &Orchestrator{
		cfg:     cfg,
		builder: builder,
		runner:  runner,
		logger:  log,
		dirs:    fileutil.NewDirStack(),
	}
}

// State returns the current state. After a failed run it is the state in
// which the run stopped.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	o.logger.LogDebug(fmt.Sprintf("orchestrator state: %s", s))
}

// Run executes the configured test run. Structural problems (no solution,
// lock busy, failed build, no test projects) return a typed error before
// any test runs. Test failures do not: they are reported and reflected in
// the returned summary's OverallExitCode.
func (o *Orchestrator) Run(ctx context.Context) (models.RunSummary, error) {
	run := o.cfg.Run

	o.setState(StatePreflightCheck)
	solution, err := dotnet.FindSolution(o.cfg.SearchDir, o.cfg.SolutionPath, o.cfg.SearchDepth)
	if err != nil {
		return models.RunSummary{}, NewConfigurationError("failed to locate solution", err)
	}
	o.logger.LogInfo(fmt.Sprintf("Using solution %s", solution.Path))

	if run.CIMode && !run.ByProject() {
		o.logger.LogWarn("--ci has no effect without --by-project")
	}

	if o.cfg.Lock {
		lock, err := filelock.AcquireRunLock(solution.Dir())
		if err != nil {
			if errors.Is(err, filelock.ErrLocked) {
				return models.RunSummary{}, &LockError{Path: filepath.Join(solution.Dir(), filelock.RunLockFileName), Err: err}
			}
			return models.RunSummary{}, NewConfigurationError("failed to acquire run lock", err)
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				o.logger.LogWarn(err.Error())
			}
		}()
	}

	if run.SkipClean {
		o.logger.LogDebug("Skipping clean, restore and build")
	} else {
		o.setState(StateCleanBuildRestore)
		if err := RunPreflight(ctx, o.runner, o.builder, solution.Path, o.logger); err != nil {
			return models.RunSummary{}, err
		}
	}

	if err := o.dirs.Push(solution.Dir()); err != nil {
		return models.RunSummary{}, NewConfigurationError("failed to enter solution directory", err)
	}
	defer func() {
		if err := o.dirs.Pop(); err != nil {
			o.logger.LogWarn(err.Error())
		}
	}()

	var results []models.InvocationResult
	if run.ByProject() {
		o.setState(StateDiscovering)
		targets, err := o.discover(solution)
		if err != nil {
			return models.RunSummary{}, err
		}

		o.setState(StateInvoking)
		results = o.invokeProjects(ctx, targets)
	} else {
		o.setState(StateInvoking)
		results = []models.InvocationResult{o.invokeSolution(ctx, solution)}
	}

	o.setState(StateAggregating)
	summary := Aggregate(results)
	Report(o.logger, summary, run, solution.Name())

	o.setState(StateDone)
	return summary, ctx.Err()
}

// discover lists test projects relative to the current (solution) directory.
func (o *Orchestrator) discover(solution dotnet.Solution) ([]models.TestTarget, error) {
	pattern := o.cfg.ProjectPattern
	if pattern == "" {
		pattern = dotnet.DefaultProjectPattern
	}

	targets, err := dotnet.Discover(".", pattern)
	if err != nil {
		return nil, &DiscoveryError{Dir: solution.Dir(), Pattern: pattern, Err: err}
	}

	o.logger.LogInfo(fmt.Sprintf("Discovered %d test projects", len(targets)))
	for _, target := range targets {
		o.logger.LogDebug(fmt.Sprintf("  %s", target.ProjectPath))
	}
	return targets, nil
}

// invokeProjects runs every target in order. A failing project never stops
// the loop; only cancellation of ctx does.
func (o *Orchestrator) invokeProjects(ctx context.Context, targets []models.TestTarget) []models.InvocationResult {
	results := make([]models.InvocationResult, 0, len(targets))

	for i := range targets {
		if ctx.Err() != nil {
			o.logger.LogWarn(fmt.Sprintf("Run cancelled, skipping %d remaining test projects", len(targets)-i))
			break
		}

		target := &targets[i]
		cmd := o.builder.Build(o.cfg.Run, target)
		o.logger.LogInfo(fmt.Sprintf("Running tests for %s", target.ProjectPath))
		o.logger.LogDebug(dotnet.Describe(cmd))

		result := o.runner.RunSync(ctx, cmd)
		result.Target = target
		result.Command = cmd

		o.logger.LogInvocationOutput(result)
		if result.Failed() {
			o.logger.LogWarn(fmt.Sprintf("%s failed (%s)", target.ProjectPath, result.Outcome()))
		}
		o.logger.LogProgress(i+1, len(targets))

		results = append(results, result)
	}

	return results
}

// invokeSolution runs the whole solution in one interactive invocation.
func (o *Orchestrator) invokeSolution(ctx context.Context, solution dotnet.Solution) models.InvocationResult {
	cmd := o.builder.Build(o.cfg.Run, nil)
	o.logger.LogInfo(fmt.Sprintf("Running tests for %s: %s", solution.Name(), dotnet.Describe(cmd)))

	result := o.runner.RunInteractive(ctx, cmd)
	result.Target = nil
	result.Command = cmd

	o.logger.LogInvocationOutput(result)
	return result
}

type nopLogger struct{}

func (nopLogger) LogDebug(string)                              {}
func (nopLogger) LogInfo(string)                               {}
func (nopLogger) LogWarn(string)                               {}
func (nopLogger) LogError(string)                              {}
func (nopLogger) LogProgress(int, int)                         {}
func (nopLogger) LogInvocationOutput(models.InvocationResult)  {}
func (nopLogger) LogFailure(string, models.InvocationResult)   {}
func (nopLogger) LogCISummary(models.RunSummary)               {}
func (nopLogger) LogSummary(models.RunSummary, models.RunMode) {}
