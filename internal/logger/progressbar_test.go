package logger

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestProgressBarRender(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"empty", 0, 4, "[          ] 0/4 projects (0%)"},
		{"half", 2, 4, "[=====     ] 2/4 projects (50%)"},
		{"complete", 4, 4, "[==========] 4/4 projects (100%)"},
		{"overflow clamps", 6, 4, "[==========] 6/4 projects (100%)"},
		{"zero total", 0, 0, "[          ] 0/0 projects (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pb := NewProgressBar(tt.total, 10, "projects", false)
			pb.Update(tt.current)
			if got := pb.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgressBarDefaultWidth(t *testing.T) {
	pb := NewProgressBar(2, 0, "", false)
	pb.Update(1)

	if got, want := pb.Render(), "[=====     ] 1/2 (50%)"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestProgressBarColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	pb := NewProgressBar(2, 10, "projects", true)
	pb.Update(1)
	if got := pb.Render(); !strings.Contains(got, "\x1b[36m") {
		t.Errorf("expected cyan escape for in-progress bar, got %q", got)
	}

	pb.Update(2)
	if got := pb.Render(); !strings.Contains(got, "\x1b[32m") {
		t.Errorf("expected green escape for complete bar, got %q", got)
	}
}
