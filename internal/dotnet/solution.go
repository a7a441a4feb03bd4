package dotnet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harrison/dotnet-test/internal/fileutil"
)

// ErrSolutionNotFound is returned when no solution file can be located.
var ErrSolutionNotFound = errors.New("solution file not found")

// excludedDirs are never searched for solutions or projects.
var excludedDirs = []string{"bin", "obj", "node_modules", "packages", "TestResults"}

// Solution is a located solution file.
type Solution struct {
	Path string // Absolute path to the .sln file
}

// Dir returns the directory containing the solution file.
func (s Solution) Dir() string {
	return filepath.Dir(s.Path)
}

// Name returns the solution file name (e.g. "Example.sln").
func (s Solution) Name() string {
	return filepath.Base(s.Path)
}

// FindSolution locates the solution to test. An explicit path must point to
// an existing file. Otherwise searchDir is scanned up to maxDepth levels deep
// (1 = searchDir only) for *.sln files. The shallowest match wins, ties
// broken lexically.
func FindSolution(searchDir, explicit string, maxDepth int) (Solution, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return Solution{}, fmt.Errorf("failed to resolve solution path %s: %w", explicit, err)
		}
		info, err := os.Stat(abs)
		if err != nil || info.IsDir() {
			return Solution{}, fmt.Errorf("%w: %s", ErrSolutionNotFound, explicit)
		}
		if ext := strings.ToLower(filepath.Ext(abs)); ext != ".sln" && ext != ".slnx" {
			return Solution{}, fmt.Errorf("%w: %s is not a .sln or .slnx file", ErrSolutionNotFound, explicit)
		}
		return Solution{Path: abs}, nil
	}

	result, err := fileutil.ScanDirectory(searchDir, fileutil.ScanOptions{
		Glob:        "*.sln",
		Recursive:   maxDepth != 1,
		MaxDepth:    maxDepth,
		ExcludeDirs: excludedDirs,
	})
	if err != nil {
		return Solution{}, fmt.Errorf("%w: %v", ErrSolutionNotFound, err)
	}
	if len(result.Files) == 0 {
		return Solution{}, fmt.Errorf("%w: no *.sln file under %s", ErrSolutionNotFound, searchDir)
	}

	matches := append([]string(nil), result.Files...)
	sort.SliceStable(matches, func(i, j int) bool {
		di, dj := pathDepth(matches[i]), pathDepth(matches[j])
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})

	abs, err := filepath.Abs(matches[0])
	if err != nil {
		return Solution{}, fmt.Errorf("failed to resolve solution path %s: %w", matches[0], err)
	}
	return Solution{Path: abs}, nil
}

func pathDepth(path string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(path)), "/")
}
