package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	FilesLabel string   // Heading for Files (default "Affected file(s)")
	Suggestion string   // Action to take (optional)
}

// Display writes the formatted warning to out, in yellow when colored is set.
func (w Warning) Display(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		b.WriteString(w.filesHeading())
		b.WriteString(":\n")

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !colored {
		fmt.Fprint(out, b.String())
		return
	}

	c := color.New(color.FgYellow)
	c.EnableColor()
	c.Fprint(out, b.String())
}

func (w Warning) filesHeading() string {
	if w.FilesLabel != "" {
		return w.FilesLabel
	}
	if len(w.Files) == 1 {
		return "Affected file"
	}
	return "Affected files"
}
