package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
)

func newRepo(t *testing.T) *TaskRepository {
	t.Helper()

	db, err := InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTaskRepository(db)
}

func task(id, title string) models.Task {
	return models.Task{
		ID:        id,
		Title:     title,
		Revenue:   100,
		TimeTaken: 4,
		Status:    models.StatusTodo,
		Priority:  models.PriorityMedium,
	}
}

func listIDs(t *testing.T, repo *TaskRepository) []string {
	t.Helper()

	tasks, err := repo.List()
	require.NoError(t, err)
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func seed(t *testing.T, repo *TaskRepository) {
	t.Helper()
	require.NoError(t, repo.ReplaceAll([]models.Task{task("a", "Alpha"), task("b", "Beta"), task("c", "Gamma")}))
}

func TestReplaceAllAndList(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	assert.Equal(t, []string{"a", "b", "c"}, listIDs(t, repo))

	require.NoError(t, repo.ReplaceAll([]models.Task{task("x", "Xi")}))
	assert.Equal(t, []string{"x"}, listIDs(t, repo))
}

func TestInsertAppends(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	require.NoError(t, repo.Insert(task("d", "Delta")))
	assert.Equal(t, []string{"a", "b", "c", "d"}, listIDs(t, repo))
}

func TestInsertIntoEmptyList(t *testing.T) {
	repo := newRepo(t)

	require.NoError(t, repo.Insert(task("a", "Alpha")))
	assert.Equal(t, []string{"a"}, listIDs(t, repo))
}

func TestInsertAtShiftsLaterTasks(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	require.NoError(t, repo.InsertAt(task("x", "Xi"), 1))
	assert.Equal(t, []string{"a", "x", "b", "c"}, listIDs(t, repo))
}

func TestInsertAtPastEndAppends(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	require.NoError(t, repo.InsertAt(task("x", "Xi"), 99))
	assert.Equal(t, []string{"a", "b", "c", "x"}, listIDs(t, repo))
}

func TestDeleteReturnsPositionAndClosesGap(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	removed, position, ok, err := repo.Delete("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Beta", removed.Title)
	assert.Equal(t, 1, position)
	assert.Equal(t, []string{"a", "c"}, listIDs(t, repo))

	// Reinserting at the returned position restores the original order.
	require.NoError(t, repo.InsertAt(removed, position))
	assert.Equal(t, []string{"a", "b", "c"}, listIDs(t, repo))
}

func TestDeleteUnknownID(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	_, _, ok, err := repo.Delete("nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, listIDs(t, repo))
}

func TestGet(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	got, ok, err := repo.Get("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, task("b", "Beta"), got)

	_, ok, err = repo.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	updated := task("b", "Beta v2")
	updated.Revenue = 999

	ok, err := repo.Update(updated)
	require.NoError(t, err)
	require.True(t, ok)

	got, _, err := repo.Get("b")
	require.NoError(t, err)
	assert.Equal(t, "Beta v2", got.Title)
	assert.Equal(t, 999.0, got.Revenue)

	// Position is untouched by updates.
	assert.Equal(t, []string{"a", "b", "c"}, listIDs(t, repo))
}

func TestUpdateUnknownID(t *testing.T) {
	repo := newRepo(t)
	seed(t, repo)

	ok, err := repo.Update(task("nope", "Ghost"))
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCount(t *testing.T) {
	repo := newRepo(t)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	seed(t, repo)
	count, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
