package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
	"github.com/google/uuid"
)

// UntitledTask is the title given to records whose title is missing or blank.
const UntitledTask = "Untitled Task"

// Normalize turns raw seed records into well-formed tasks. Every record
// yields a task: missing or malformed pieces are repaired, never dropped.
func Normalize(raw []models.RawTask) []models.Task {
	tasks := make([]models.Task, 0, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, rec := range raw {
		task := normalizeRecord(rec)
		if seen[task.ID] {
			// A duplicate id would corrupt the canonical list. The first
			// occurrence keeps the id, later ones are re-keyed.
			task.ID = uuid.NewString()
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}

	return tasks
}

func normalizeRecord(rec models.RawTask) models.Task {
	id := strings.TrimSpace(coerceString(rec.ID))
	if id == "" {
		id = uuid.NewString()
	}

	return models.Task{
		ID:        id,
		Title:     normalizeTitle(coerceString(rec.Title)),
		Revenue:   coerceNumber(rec.Revenue),
		TimeTaken: coerceNumber(rec.TimeTaken),
		Status:    normalizeStatus(coerceString(rec.Status)),
		Priority:  normalizePriority(coerceString(rec.Priority)),
	}
}

// TaskInput is a user-supplied task before validation.
type TaskInput struct {
	Title     string
	Revenue   float64
	TimeTaken float64
	Status    string
	Priority  string
}

// NormalizeInput applies the same repairs as Normalize to a single
// user-supplied task and assigns it a fresh id.
func NormalizeInput(input TaskInput) models.Task {
	return models.Task{
		ID:        uuid.NewString(),
		Title:     normalizeTitle(input.Title),
		Revenue:   sanitizeNumber(input.Revenue),
		TimeTaken: sanitizeNumber(input.TimeTaken),
		Status:    normalizeStatus(input.Status),
		Priority:  normalizePriority(input.Priority),
	}
}

func normalizeTitle(s string) string {
	title := strings.TrimSpace(s)
	if title == "" {
		return UntitledTask
	}
	return title
}

func normalizeStatus(s string) models.Status {
	status, ok := models.ParseStatus(s)
	if !ok {
		return models.StatusTodo
	}
	return status
}

func normalizePriority(s string) models.Priority {
	priority, ok := models.ParsePriority(s)
	if !ok {
		return models.PriorityMedium
	}
	return priority
}

func coerceString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}

// coerceNumber maps anything that is not a finite number to 0; the ROI
// calculator then treats a timeTaken of 0 as not computable.
func coerceNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return sanitizeNumber(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0
		}
		return sanitizeNumber(n)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return sanitizeNumber(n)
	default:
		return 0
	}
}

func sanitizeNumber(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
