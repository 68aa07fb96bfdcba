package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Makepad-fr/taskbin/internal/model"
)

// TaskMarkdown describes a task as a markdown document.
func TaskMarkdown(number int, t model.Task) string {
	status := "pending"
	if t.Completed {
		status = "done"
	}
	due := DueDate(t)
	if due == "" {
		due = "_not set_"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Task %d\n\n", number)
	fmt.Fprintf(&b, "%s\n\n", t.Description)
	fmt.Fprintf(&b, "- **Priority:** %s\n", t.Priority)
	fmt.Fprintf(&b, "- **Due:** %s\n", due)
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	return b.String()
}

// RenderTask renders TaskMarkdown for the terminal. style is a glamour
// standard style name ("dark", "light", "notty", ...) or "auto".
func RenderTask(number int, t model.Task, style string, width int) (string, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(TaskMarkdown(number, t))
	if err != nil {
		return "", fmt.Errorf("render task: %w", err)
	}
	return out, nil
}
