package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/dotnet-test/internal/config"
	"github.com/harrison/dotnet-test/internal/dotnet"
	"github.com/harrison/dotnet-test/internal/executor"
	"github.com/harrison/dotnet-test/internal/logger"
	"github.com/harrison/dotnet-test/internal/models"
)

// ExitError carries a process exit status whose cause has already been
// reported to the user.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the process exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}

// runTests implements the root command logic
func runTests(cmd *cobra.Command, args []string, runner executor.ProcessRunner) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	run := runConfiguration(cmd, args)

	consoleLog := logger.NewConsoleLogger(cmd.OutOrStdout(), cfg.LogLevel)
	loggers := []executor.Logger{consoleLog}

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return executor.NewConfigurationError("failed to create file logger", err)
		}
		defer fileLog.Close()
		loggers = append(loggers, fileLog)
	}
	log := &multiLogger{loggers: loggers}

	log.LogDebug(fmt.Sprintf("Run configuration: mode=%s skip-clean=%t coverage=%t ci=%t", run.Mode, run.SkipClean, run.WithCoverage, run.CIMode))
	if run.HasFilter() {
		log.LogDebug(fmt.Sprintf("Test filter: %s", dotnet.Quote(run.Filter)))
	}

	orch := executor.NewOrchestrator(executor.OrchestratorConfig{
		Run:            run,
		SearchDir:      ".",
		SolutionPath:   cfg.Solution,
		SearchDepth:    cfg.SolutionSearchDepth,
		ProjectPattern: cfg.ProjectPattern,
		Lock:           cfg.Lock,
	}, dotnet.NewCommandBuilder(cfg.DotnetPath, cfg.CoverageArgs), runner, log)

	summary, err := orch.Run(cmd.Context())
	if fileLog != nil {
		consoleLog.LogInfo(fmt.Sprintf("Run log written to %s", fileLog.RunFile()))
	}
	if err != nil {
		log.LogError(err.Error())
		if hint, ok := hintFor(err); ok {
			hint.Display(cmd.ErrOrStderr(), logger.IsTerminal(cmd.ErrOrStderr()))
		}
		return &ExitError{Code: executor.ExitCodeFor(err)}
	}

	if summary.OverallExitCode != 0 {
		return &ExitError{Code: summary.OverallExitCode}
	}
	return nil
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr != nil {
			return nil, executor.NewConfigurationError(fmt.Sprintf("config file %s", configPath), statErr)
		}
		cfg, err = config.LoadConfig(configPath)
	} else {
		cfg, err = config.LoadConfigFromDir(".")
	}
	if err != nil {
		return nil, executor.NewConfigurationError("failed to load config", err)
	}

	var dotnetPath, solution, logLevel, logDir *string
	if cmd.Flags().Changed("dotnet") {
		v, _ := cmd.Flags().GetString("dotnet")
		dotnetPath = &v
	}
	if cmd.Flags().Changed("solution") {
		v, _ := cmd.Flags().GetString("solution")
		solution = &v
	}
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		v = strings.ToLower(v)
		logLevel = &v
	} else if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		v := "debug"
		logLevel = &v
	}
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDir = &v
	}
	cfg.MergeWithFlags(dotnetPath, solution, logLevel, logDir)

	if err := cfg.Validate(); err != nil {
		return nil, executor.NewConfigurationError("invalid configuration", err)
	}
	return cfg, nil
}

// runConfiguration builds the immutable run options from flags and the
// trailing filter arguments.
func runConfiguration(cmd *cobra.Command, args []string) models.RunConfiguration {
	byProject, _ := cmd.Flags().GetBool("by-project")
	coverage, _ := cmd.Flags().GetBool("coverage")
	skipClean, _ := cmd.Flags().GetBool("skip-clean")
	ci, _ := cmd.Flags().GetBool("ci")

	mode := models.ModePerSolution
	if byProject {
		mode = models.ModePerProject
	}

	return models.RunConfiguration{
		Mode:         mode,
		SkipClean:    skipClean,
		WithCoverage: coverage,
		Filter:       strings.Join(args, " "),
		CIMode:       ci,
	}
}

// multiLogger implements executor.Logger by delegating to multiple loggers
type multiLogger struct {
	loggers []executor.Logger
}

func (ml *multiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

func (ml *multiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

func (ml *multiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

func (ml *multiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

func (ml *multiLogger) LogProgress(done, total int) {
	for _, l := range ml.loggers {
		l.LogProgress(done, total)
	}
}

func (ml *multiLogger) LogInvocationOutput(result models.InvocationResult) {
	for _, l := range ml.loggers {
		l.LogInvocationOutput(result)
	}
}

func (ml *multiLogger) LogFailure(label string, result models.InvocationResult) {
	for _, l := range ml.loggers {
		l.LogFailure(label, result)
	}
}

func (ml *multiLogger) LogCISummary(summary models.RunSummary) {
	for _, l := range ml.loggers {
		l.LogCISummary(summary)
	}
}

// LogSummary forwards to all loggers
func (ml *multiLogger) LogSummary(summary models.RunSummary, mode models.RunMode) {
	for _, l := range ml.loggers {
		l.LogSummary(summary, mode)
	}
}
