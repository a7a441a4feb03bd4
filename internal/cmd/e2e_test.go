package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/dotnet-test/internal/executor"
)

// fakeDotnet mimics dotnet: preflight verbs succeed, B.Tests fails, every
// call is appended to $FAKE_DOTNET_CALLS.
const fakeDotnet = `#!/bin/sh
echo "$*" >> "$FAKE_DOTNET_CALLS"
case "$1" in
  clean|restore|build)
    exit 0 ;;
  test)
    for last; do :; done
    case "$last" in
      *B.Tests.csproj)
        echo "  Failed B.Tests.MathTests.Adds [1 ms]"
        echo "Failed!  - Failed:     1, Passed:     2, Skipped:     0, Total:     3"
        echo "B broke" >&2
        exit 1 ;;
      *)
        echo "Passed!  - Failed:     0, Passed:     3, Skipped:     0, Total:     3"
        exit 0 ;;
    esac ;;
esac
exit 64
`

func setupFakeDotnet(t *testing.T) (script, calls string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	binDir := t.TempDir()
	script = filepath.Join(binDir, "dotnet")
	require.NoError(t, os.WriteFile(script, []byte(fakeDotnet), 0755))

	calls = filepath.Join(binDir, "calls.log")
	t.Setenv("FAKE_DOTNET_CALLS", calls)
	return script, calls
}

func readCalls(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func executeReal(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(executor.NewExecRunner(""))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEndToEnd_ByProjectWithRealProcesses(t *testing.T) {
	script, calls := setupFakeDotnet(t)
	chdirSolution(t,
		"tests/A.Tests/A.Tests.csproj",
		"tests/B.Tests/B.Tests.csproj",
		"tests/C.Tests/C.Tests.csproj",
	)

	out, err := executeReal(t, "--dotnet", script, "--by-project", "-s", "--ci", "Category=Unit")

	assert.Equal(t, 1, executor.ExitCodeFor(err))
	assert.Equal(t, []string{
		"test --no-build --no-restore --filter Category=Unit " + filepath.FromSlash("tests/A.Tests/A.Tests.csproj"),
		"test --no-build --no-restore --filter Category=Unit " + filepath.FromSlash("tests/B.Tests/B.Tests.csproj"),
		"test --no-build --no-restore --filter Category=Unit " + filepath.FromSlash("tests/C.Tests/C.Tests.csproj"),
	}, readCalls(t, calls))

	assert.Contains(t, out, "Passed!  - Failed:     0, Passed:     3")
	assert.Contains(t, out, "Failed tests for "+filepath.FromSlash("tests/B.Tests/B.Tests.csproj")+" (exit code 1)")
	assert.Contains(t, out, "- B.Tests.MathTests.Adds")
	assert.Contains(t, out, "B broke")
	assert.Contains(t, out, "1 test projects failed out of 3")
}

func TestEndToEnd_PreflightThenSolution(t *testing.T) {
	script, calls := setupFakeDotnet(t)
	root := chdirSolution(t, "tests/A.Tests/A.Tests.csproj")

	_, err := executeReal(t, "--dotnet", script)
	require.NoError(t, err)

	sln := filepath.Join(realPathOf(t, root), "App.sln")
	got := readCalls(t, calls)
	require.Len(t, got, 4)
	assert.Equal(t, "test --no-build --no-restore", got[3])
	for i, verb := range []string{"clean", "restore", "build"} {
		assert.True(t, strings.HasPrefix(got[i], verb+" "), "call %d: %s", i, got[i])
		assert.Contains(t, realPathOf(t, strings.Fields(got[i])[1]), sln)
	}
}

func TestEndToEnd_MissingDotnet(t *testing.T) {
	chdirSolution(t, "tests/A.Tests/A.Tests.csproj")

	out, err := executeReal(t, "--dotnet", "dotnet-test-no-such-binary", "--by-project", "-s")

	assert.Equal(t, 1, executor.ExitCodeFor(err))
	assert.Contains(t, out, "failed to start")
}

func realPathOf(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
