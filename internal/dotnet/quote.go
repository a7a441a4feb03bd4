package dotnet

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harrison/dotnet-test/internal/models"
)

const (
	// \w is [0-9A-Za-z_]. A leading '=' is unsafe in zsh.
	leadingSafeChars  = `-\w@%+:,./`
	trailingSafeChars = leadingSafeChars + "="
)

var safeArgRE = regexp.MustCompile(fmt.Sprintf("^[%s][%s]*$", leadingSafeChars, trailingSafeChars))

// Quote returns s quoted for a POSIX shell, unchanged if already safe.
func Quote(s string) string {
	if safeArgRE.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// Describe renders cmd as a copy-pasteable shell command line. It is for
// display only; commands are always executed without a shell.
func Describe(cmd models.Command) string {
	argv := cmd.Argv()
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}
