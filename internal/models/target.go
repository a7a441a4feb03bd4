package models

import (
	"path/filepath"
	"strings"
)

// TestTarget is a single discovered test project.
type TestTarget struct {
	ProjectPath string // Project file path, relative to the solution directory
}

// Name returns the project file name without its extension
// (e.g. "Example.Core.Tests" for "src/Example.Core.Tests/Example.Core.Tests.csproj").
func (t TestTarget) Name() string {
	base := filepath.Base(t.ProjectPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Command is a single external runner invocation.
type Command struct {
	Executable string
	Args       []string
}

// Argv returns the full argument vector, executable first.
func (c Command) Argv() []string {
	argv := make([]string, 0, len(c.Args)+1)
	argv = append(argv, c.Executable)
	return append(argv, c.Args...)
}
