package model

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task. The numeric values are persisted.
type Priority uint32

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// UnsetDueDate marks a task without a due date.
const UnsetDueDate = " "

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	}
	return fmt.Sprintf("priority(%d)", uint32(p))
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool { return p <= PriorityHigh }

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	if !p.Valid() || p == PriorityHigh {
		return PriorityLow
	}
	return p + 1
}

// ParsePriority accepts a name ("high") or its first letter ("h").
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "l", "low":
		return PriorityLow, nil
	case "m", "med", "medium":
		return PriorityMedium, nil
	case "h", "high":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("unknown priority %q (want low, medium or high)", s)
}

// Task is the domain model for a todo entry.
type Task struct {
	Priority    Priority
	Description string
	DueDate     string
	Completed   bool
}

// HasDueDate reports whether the due date was filled in.
func (t Task) HasDueDate() bool {
	return strings.TrimSpace(strings.TrimRight(t.DueDate, "\x00")) != ""
}
