package ui

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/taskbin/internal/model"
)

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("MONO")
	assert.Equal(t, "mono", Current().Name)
	assert.Equal(t, "[x]", Current().BoxChecked)

	SetTheme("neon")
	assert.Equal(t, "neon", Current().Name)

	SetTheme("whatever")
	assert.Equal(t, "classic", Current().Name)
}

func TestTaskLine(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")

	line := TaskLine(2, model.Task{Priority: model.PriorityHigh, Description: "Pay rent", DueDate: "2024-01-01\x00", Completed: true})
	assert.Contains(t, line, " 2.")
	assert.Contains(t, line, "[x]")
	assert.Contains(t, line, "[high]")
	assert.Contains(t, line, "Pay rent")
	assert.Contains(t, line, "due 2024-01-01")

	line = TaskLine(1, model.Task{Description: strings.Repeat("a", 100), DueDate: model.UnsetDueDate})
	assert.Contains(t, line, strings.Repeat("a", 77)+"...")
	assert.NotContains(t, line, "due")
}

func TestTaskLineTruncatesByDisplayWidth(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })
	SetTheme("mono")

	tests := []struct {
		name string
		desc string
		want string
	}{
		{"two byte runes", strings.Repeat("a", 76) + strings.Repeat("é", 10), strings.Repeat("a", 76) + "é..."},
		{"wide runes", strings.Repeat("日", 50), strings.Repeat("日", 38) + "..."},
		{"fits", strings.Repeat("é", 80), strings.Repeat("é", 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := TaskLine(1, model.Task{Description: tt.desc, DueDate: model.UnsetDueDate})
			assert.True(t, utf8.ValidString(line), "invalid UTF-8 in %q", line)
			assert.True(t, strings.HasSuffix(line, tt.want), "got %q", line)
		})
	}
}

func TestGroupLinesKeepsPositions(t *testing.T) {
	tasks := []model.Task{
		{Description: "done one", Completed: true},
		{Description: "open one"},
	}
	lines := GroupLines(tasks)
	joined := strings.Join(lines, "\n")

	require.Less(t, strings.Index(joined, "Pending"), strings.Index(joined, "Done"))
	assert.Less(t, strings.Index(joined, "open one"), strings.Index(joined, "done one"))
	assert.Contains(t, joined, " 2.")
}

func TestStatsAndHeader(t *testing.T) {
	tasks := []model.Task{{Completed: true}, {}, {}}
	d, p := Stats(tasks)
	assert.Equal(t, 1, d)
	assert.Equal(t, 2, p)
	assert.Contains(t, Header(tasks), "Total")
}

func TestOKFail(t *testing.T) {
	var out bytes.Buffer
	OK(&out, "added")
	Fail(&out, "boom")
	assert.Contains(t, out.String(), "added")
	assert.Contains(t, out.String(), "boom")
}

func TestTaskMarkdown(t *testing.T) {
	md := TaskMarkdown(3, model.Task{Priority: model.PriorityMedium, Description: "Call mom", DueDate: model.UnsetDueDate})
	assert.Contains(t, md, "# Task 3")
	assert.Contains(t, md, "Call mom")
	assert.Contains(t, md, "**Priority:** medium")
	assert.Contains(t, md, "_not set_")
	assert.Contains(t, md, "**Status:** pending")
}

func TestRenderTask(t *testing.T) {
	out, err := RenderTask(1, model.Task{Priority: model.PriorityHigh, Description: "Pay rent", DueDate: "soon", Completed: true}, "notty", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Pay rent")
	assert.Contains(t, out, "high")
	assert.Contains(t, out, "done")
}
