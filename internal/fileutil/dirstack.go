package fileutil

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyDirStack is returned by Pop when nothing has been pushed.
var ErrEmptyDirStack = errors.New("directory stack is empty")

// DirStack changes the working directory with pushd/popd semantics.
type DirStack struct {
	dirs []string
}

// NewDirStack creates an empty DirStack.
func NewDirStack() *DirStack {
	return &DirStack{}
}

// Push saves the current working directory and changes to dir.
func (s *DirStack) Push(dir string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("failed to change directory to %s: %w", dir, err)
	}
	s.dirs = append(s.dirs, cwd)
	return nil
}

// Pop returns to the directory saved by the matching Push.
func (s *DirStack) Pop() error {
	if len(s.dirs) == 0 {
		return ErrEmptyDirStack
	}
	last := s.dirs[len(s.dirs)-1]
	s.dirs = s.dirs[:len(s.dirs)-1]
	if err := os.Chdir(last); err != nil {
		return fmt.Errorf("failed to return to directory %s: %w", last, err)
	}
	return nil
}

// PopAll unwinds every pushed directory, returning the first error.
func (s *DirStack) PopAll() error {
	var firstErr error
	for len(s.dirs) > 0 {
		if err := s.Pop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Depth returns the number of pushed directories.
func (s *DirStack) Depth() int {
	return len(s.dirs)
}
