// Package fileutil provides the file system helpers used by dotnet-test:
// glob-filtered directory scanning and a scoped working-directory stack.
//
// ScanDirectory walks a directory tree, matching file base names against a
// filepath.Match glob. Hidden directories and the configured exclusions
// (typically bin, obj and node_modules) are skipped, non-fatal errors are
// collected instead of aborting the walk, and results are sorted so that
// discovery order is deterministic across platforms.
//
// Basic recursive scanning for test projects:
//
//	result, err := fileutil.ScanDirectory(solutionDir, fileutil.ScanOptions{
//	    Glob:        "*.Test*.csproj",
//	    Recursive:   true,
//	    ExcludeDirs: []string{"bin", "obj"},
//	    Relative:    true,
//	})
//
// DirStack mirrors the shell's pushd/popd:
//
//	stack := fileutil.NewDirStack()
//	if err := stack.Push(solutionDir); err != nil {
//	    return err
//	}
//	defer stack.Pop()
//
// The working directory is process-wide state; DirStack is not safe for
// concurrent use.
package fileutil
