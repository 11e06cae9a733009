package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
)

func TestNormalizeGeneratesMissingID(t *testing.T) {
	tasks := Normalize([]models.RawTask{
		{Title: "no id"},
		{ID: "", Title: "blank id"},
		{ID: "   ", Title: "whitespace id"},
	})

	require.Len(t, tasks, 3)
	for _, task := range tasks {
		assert.NotEmpty(t, task.ID)
	}
}

func TestNormalizeRekeysDuplicateIDs(t *testing.T) {
	tasks := Normalize([]models.RawTask{
		{ID: "dup", Title: "first"},
		{ID: "dup", Title: "second"},
	})

	require.Len(t, tasks, 2)
	assert.Equal(t, "dup", tasks[0].ID)
	assert.NotEmpty(t, tasks[1].ID)
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}

func TestNormalizeRepairsFields(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawTask
		want models.Task
	}{
		{
			name: "blank title gets placeholder",
			raw:  models.RawTask{ID: "a", Title: "   "},
			want: models.Task{ID: "a", Title: UntitledTask, Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "title is trimmed",
			raw:  models.RawTask{ID: "a", Title: "  Ship it  "},
			want: models.Task{ID: "a", Title: "Ship it", Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "numeric strings are parsed",
			raw:  models.RawTask{ID: "a", Title: "x", Revenue: "12.5", TimeTaken: "2"},
			want: models.Task{ID: "a", Title: "x", Revenue: 12.5, TimeTaken: 2, Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "non-numeric values become zero",
			raw:  models.RawTask{ID: "a", Title: "x", Revenue: "lots", TimeTaken: true},
			want: models.Task{ID: "a", Title: "x", Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "NaN string becomes zero",
			raw:  models.RawTask{ID: "a", Title: "x", Revenue: "NaN", TimeTaken: 1},
			want: models.Task{ID: "a", Title: "x", TimeTaken: 1, Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "integer values coerce",
			raw:  models.RawTask{ID: "a", Title: "x", Revenue: 250, TimeTaken: int64(2)},
			want: models.Task{ID: "a", Title: "x", Revenue: 250, TimeTaken: 2, Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "json.Number values coerce",
			raw:  models.RawTask{ID: "a", Title: "x", Revenue: json.Number("12.5"), TimeTaken: json.Number("4")},
			want: models.Task{ID: "a", Title: "x", Revenue: 12.5, TimeTaken: 4, Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "unknown enums fall back to defaults",
			raw:  models.RawTask{ID: "a", Title: "x", Status: "backlog", Priority: "urgent"},
			want: models.Task{ID: "a", Title: "x", Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
		{
			name: "known enums survive",
			raw:  models.RawTask{ID: "a", Title: "x", Status: "done", Priority: "high"},
			want: models.Task{ID: "a", Title: "x", Status: models.StatusDone, Priority: models.PriorityHigh},
		},
		{
			name: "numeric id is stringified",
			raw:  models.RawTask{ID: float64(7), Title: "x"},
			want: models.Task{ID: "7", Title: "x", Status: models.StatusTodo, Priority: models.PriorityMedium},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := Normalize([]models.RawTask{tt.raw})
			require.Len(t, tasks, 1)
			assert.Equal(t, tt.want, tasks[0])
		})
	}
}

func TestNormalizeNegativeTimeYieldsNilROI(t *testing.T) {
	tasks := Normalize([]models.RawTask{
		{ID: "a", Title: "x", Revenue: float64(100), TimeTaken: float64(-5)},
	})

	require.Len(t, tasks, 1)
	assert.Nil(t, models.Derive(tasks[0]).ROI)
}

func TestNormalizeInput(t *testing.T) {
	task := NormalizeInput(TaskInput{Title: "  New thing ", Revenue: 50, TimeTaken: 2, Status: "nope", Priority: "high"})

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "New thing", task.Title)
	assert.Equal(t, 50.0, task.Revenue)
	assert.Equal(t, models.StatusTodo, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
}
