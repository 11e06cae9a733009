package service

import (
	"slices"
	"strings"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// All matches every value of a criteria field, same as leaving it empty.
const All = "all"

// Criteria filters the derived view. Empty (or "all") fields match every
// task; active fields combine with AND.
type Criteria struct {
	Status   string
	Priority string
	Search   string
}

// Matches reports whether t satisfies every active criterion. Filter values
// are compared case-insensitively, and the text search is a
// case-insensitive substring match on the title.
func Matches(t models.DerivedTask, c Criteria) bool {
	if !fieldMatches(c.Status, string(t.Status)) {
		return false
	}
	if !fieldMatches(c.Priority, string(t.Priority)) {
		return false
	}
	if c.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(c.Search)) {
		return false
	}
	return true
}

func fieldMatches(criterion, value string) bool {
	criterion = strings.TrimSpace(criterion)
	return criterion == "" || strings.EqualFold(criterion, All) || strings.EqualFold(criterion, value)
}

// SortTasks returns a new slice ordered by ROI descending (tasks without a
// computable ROI after every task with one), then priority weight
// descending, then title ascending under English collation. The sort is
// stable: tasks equal on all three keys keep their input order. The input
// slice is not modified.
func SortTasks(tasks []models.DerivedTask) []models.DerivedTask {
	out := slices.Clone(tasks)
	titles := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b models.DerivedTask) int {
		return compareTasks(titles, a, b)
	})
	return out
}

func compareTasks(titles *collate.Collator, a, b models.DerivedTask) int {
	switch {
	case a.ROI == nil && b.ROI != nil:
		return 1
	case a.ROI != nil && b.ROI == nil:
		return -1
	case a.ROI != nil && b.ROI != nil && *a.ROI != *b.ROI:
		if *a.ROI > *b.ROI {
			return -1
		}
		return 1
	}

	if a.PriorityWeight != b.PriorityWeight {
		return b.PriorityWeight - a.PriorityWeight
	}

	return titles.CompareString(a.Title, b.Title)
}
