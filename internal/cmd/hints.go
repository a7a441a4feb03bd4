package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/harrison/dotnet-test/internal/config"
	"github.com/harrison/dotnet-test/internal/display"
	"github.com/harrison/dotnet-test/internal/dotnet"
	"github.com/harrison/dotnet-test/internal/executor"
	"github.com/harrison/dotnet-test/internal/filelock"
	"github.com/harrison/dotnet-test/internal/fileutil"
)

// maxHintFiles caps how many candidate files a hint lists.
const maxHintFiles = 10

var configFile = filepath.Join(config.ConfigDirName, config.ConfigFileName)

// hintFor returns a follow-up hint for errors that stop a run before any
// test executes.
func hintFor(err error) (display.Warning, bool) {
	var de *executor.DiscoveryError
	var le *executor.LockError
	var pe *executor.PreflightError

	switch {
	case errors.Is(err, dotnet.ErrSolutionNotFound):
		return display.Warning{
			Title:      "Solution not found",
			Message:    "No *.sln file was found in or below the working directory.",
			Suggestion: fmt.Sprintf("Run from the solution directory, pass --solution, or raise solution_search_depth in %s", configFile),
		}, true

	case errors.As(err, &de):
		return display.Warning{
			Title:      "No test projects found",
			Message:    fmt.Sprintf("Nothing under %s matches %q.", de.Dir, de.Pattern),
			Files:      candidateProjects(de.Dir),
			FilesLabel: "Project files found",
			Suggestion: fmt.Sprintf("Set project_pattern in %s, or run without --by-project", configFile),
		}, true

	case errors.As(err, &le) && errors.Is(err, filelock.ErrLocked):
		return display.Warning{
			Title:      "Another run is in progress",
			Message:    "Only one dotnet-test run per solution may run at a time.",
			Files:      []string{le.Path},
			Suggestion: fmt.Sprintf("Wait for the other run to finish, or set lock: false in %s", configFile),
		}, true

	case errors.As(err, &pe):
		return display.Warning{
			Title:      fmt.Sprintf("dotnet %s failed", pe.Step),
			Message:    "No tests were run. See the build output above.",
			Suggestion: "Fix the build, or pass -s to skip the clean, restore and build step",
		}, true
	}

	return display.Warning{}, false
}

// candidateProjects lists project files under dir that the pattern missed.
func candidateProjects(dir string) []string {
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Glob:        "*.csproj",
		Recursive:   true,
		ExcludeDirs: []string{"bin", "obj", "node_modules", "packages", "TestResults"},
		Relative:    true,
	})
	if err != nil {
		return nil
	}
	if len(result.Files) > maxHintFiles {
		return result.Files[:maxHintFiles]
	}
	return result.Files
}
