package dotnet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/dotnet-test/internal/fileutil"
	"github.com/harrison/dotnet-test/internal/models"
)

// DefaultProjectPattern matches test projects anywhere below the solution.
const DefaultProjectPattern = "**/*.Test*.csproj"

// ErrNoTestProjects is returned when discovery finds nothing to run.
var ErrNoTestProjects = errors.New("no test projects found")

// Discover finds test projects under solutionDir. A leading "**/" in pattern
// makes the search recursive; the remainder is matched against file names.
// Targets are returned relative to solutionDir in lexical order.
func Discover(solutionDir, pattern string) ([]models.TestTarget, error) {
	if pattern == "" {
		pattern = DefaultProjectPattern
	}

	glob, recursive := splitPattern(pattern)
	if glob == "" || strings.ContainsAny(glob, `/\`) {
		return nil, fmt.Errorf("unsupported project pattern %q: only a leading **/ may contain a path separator", pattern)
	}

	result, err := fileutil.ScanDirectory(solutionDir, fileutil.ScanOptions{
		Glob:        glob,
		Recursive:   recursive,
		ExcludeDirs: excludedDirs,
		Relative:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", solutionDir, err)
	}

	if len(result.Files) == 0 {
		return nil, fmt.Errorf("%w: no project files matching the pattern %s", ErrNoTestProjects, pattern)
	}

	targets := make([]models.TestTarget, 0, len(result.Files))
	for _, file := range result.Files {
		targets = append(targets, models.TestTarget{ProjectPath: file})
	}
	return targets, nil
}

// splitPattern separates the recursive "**/" prefix from the name glob.
func splitPattern(pattern string) (glob string, recursive bool) {
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		return rest, true
	}
	return pattern, false
}
