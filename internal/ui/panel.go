package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Makepad-fr/taskbin/internal/model"
)

func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymOK+" "+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render(current.SymFail+" "+msg))
}

// Warn is Fail in the pending color, for recoverable problems.
func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Pending.Render("! "+msg))
}

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel frames lines with the theme border.
func Panel(lines []string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Stats counts completed and pending tasks.
func Stats(tasks []model.Task) (done, pending int) {
	for _, t := range tasks {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Header is the one-line summary shown above a list.
func Header(tasks []model.Task) string {
	d, p := Stats(tasks)
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		current.Title.Render("Todos"),
		current.Success.Render("✔"), d,
		current.Pending.Render("•"), p,
		current.Accent.Render("Total"), len(tasks),
	)
}

// PriorityBadge renders a fixed-width priority tag such as "[high]".
func PriorityBadge(p model.Priority) string {
	return current.PriorityStyle(p).Render(fmt.Sprintf("%-8s", "["+p.String()+"]"))
}

// DueDate returns the printable due date, or "" when unset.
func DueDate(t model.Task) string {
	if !t.HasDueDate() {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(t.DueDate, "\x00"))
}

// maxDescriptionWidth caps a description in list lines, in terminal cells.
const maxDescriptionWidth = 80

// TaskLine renders one task with its 1-based number.
func TaskLine(number int, t model.Task) string {
	text := ansi.Truncate(t.Description, maxDescriptionWidth, "...")
	box := current.Muted.Render(current.BoxUnchecked)
	if t.Completed {
		box = current.Success.Render(current.BoxChecked)
		text = current.Done.Render(text)
	}
	line := fmt.Sprintf("%s %s %s %s",
		current.Muted.Render(fmt.Sprintf("%2d.", number)), box, PriorityBadge(t.Priority), text)
	if due := DueDate(t); due != "" {
		line += current.Muted.Render("  due " + due)
	}
	return line
}

// ListLines renders every task, or a placeholder for an empty list.
func ListLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{current.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for i, t := range tasks {
		out = append(out, TaskLine(i+1, t))
	}
	return out
}

// GroupLines renders pending tasks first, then completed ones. Numbers stay
// the positions in the full list so they can be passed to rm/done.
func GroupLines(tasks []model.Task) []string {
	var pend, done []string
	for i, t := range tasks {
		if t.Completed {
			done = append(done, TaskLine(i+1, t))
		} else {
			pend = append(pend, TaskLine(i+1, t))
		}
	}
	none := current.Muted.Render("(none)")
	var lines []string
	lines = append(lines, current.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, none)
	}
	lines = append(lines, pend...)
	lines = append(lines, "", current.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, none)
	}
	return append(lines, done...)
}
