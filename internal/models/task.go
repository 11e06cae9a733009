package models

import "strings"

// Status is the workflow state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ParseStatus matches s against the known statuses, ignoring case and
// surrounding whitespace.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusDone:
		return StatusDone, true
	}
	return "", false
}

// Priority is the user-assigned importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority matches s against the known priorities, ignoring case and
// surrounding whitespace.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

// Weight is the ordinal used for sorting: high > medium > low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Task struct {
	ID        string
	Title     string
	Revenue   float64
	TimeTaken float64
	Status    Status
	Priority  Priority
}

// RawTask is a seed record before normalization. Every field is untyped so
// a document with malformed field types still decodes; the normalizer does
// the coercion.
type RawTask struct {
	ID        any `json:"id"`
	Title     any `json:"title"`
	Revenue   any `json:"revenue"`
	TimeTaken any `json:"timeTaken"`
	Status    any `json:"status"`
	Priority  any `json:"priority"`
}

// DerivedTask is a task plus its computed sort keys. A nil ROI means the
// metric is not computable for this task.
type DerivedTask struct {
	Task
	ROI            *float64
	PriorityWeight int
}

// Derive computes the sortable projection of t.
func Derive(t Task) DerivedTask {
	return DerivedTask{
		Task:           t,
		ROI:            ComputeROI(t.Revenue, t.TimeTaken),
		PriorityWeight: t.Priority.Weight(),
	}
}
