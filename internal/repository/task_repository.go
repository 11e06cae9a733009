package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
)

const insertTaskQuery = `
	INSERT INTO tasks (id, title, revenue, time_taken, status, priority, position)
        VALUES (?, ?, ?, ?, ?, ?, ?)
`

// TaskRepository holds the canonical task list in position order.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// ReplaceAll swaps the whole canonical list for tasks, in the given order.
func (r *TaskRepository) ReplaceAll(tasks []models.Task) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error trying to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("Error trying to clear tasks: %w", err)
	}

	for i, t := range tasks {
		_, err := tx.Exec(insertTaskQuery,
			t.ID,
			t.Title,
			t.Revenue,
			t.TimeTaken,
			string(t.Status),
			string(t.Priority),
			i,
		)
		if err != nil {
			return fmt.Errorf("Error trying to insert task %s: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// List returns the canonical list in position order.
func (r *TaskRepository) List() ([]models.Task, error) {
	query := `
		SELECT id, title, revenue, time_taken, status, priority FROM tasks
        ORDER BY position
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("Error trying to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Revenue,
			&t.TimeTaken,
			&t.Status,
			&t.Priority,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Get returns the task with the given id, reporting false when absent.
func (r *TaskRepository) Get(id string) (models.Task, bool, error) {
	query := `
		SELECT id, title, revenue, time_taken, status, priority FROM tasks
        WHERE id = ?
	`

	var t models.Task
	err := r.db.QueryRow(query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Revenue,
		&t.TimeTaken,
		&t.Status,
		&t.Priority,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, false, nil
	}
	if err != nil {
		return models.Task{}, false, fmt.Errorf("Error trying to get task: %w", err)
	}

	return t, true, nil
}

// Count returns the size of the canonical list.
func (r *TaskRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Error trying to count tasks: %w", err)
	}
	return n, nil
}

// Insert appends task at the end of the list.
func (r *TaskRepository) Insert(task models.Task) error {
	query := `
		INSERT INTO tasks (id, title, revenue, time_taken, status, priority, position)
        VALUES (?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM tasks))
	`
	_, err := r.db.Exec(query,
		task.ID,
		task.Title,
		task.Revenue,
		task.TimeTaken,
		string(task.Status),
		string(task.Priority),
	)
	if err != nil {
		return fmt.Errorf("Error trying to insert task: %w", err)
	}
	return nil
}

// InsertAt puts task back at position, shifting later tasks down. A position
// past the end of the list appends.
func (r *TaskRepository) InsertAt(task models.Task, position int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("Error trying to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return fmt.Errorf("Error trying to count tasks: %w", err)
	}
	if position < 0 || position > count {
		position = count
	}

	if _, err := tx.Exec(`UPDATE tasks SET position = position + 1 WHERE position >= ?`, position); err != nil {
		return fmt.Errorf("Error trying to shift tasks: %w", err)
	}

	_, err = tx.Exec(insertTaskQuery,
		task.ID,
		task.Title,
		task.Revenue,
		task.TimeTaken,
		string(task.Status),
		string(task.Priority),
		position,
	)
	if err != nil {
		return fmt.Errorf("Error trying to insert task at position %d: %w", position, err)
	}

	return tx.Commit()
}

// Update overwrites the stored task with the same id, reporting false when
// no such task exists.
func (r *TaskRepository) Update(task models.Task) (bool, error) {
	query := `
		UPDATE tasks SET title = ?, revenue = ?, time_taken = ?, status = ?, priority = ?
        WHERE id = ?
	`
	result, err := r.db.Exec(query,
		task.Title,
		task.Revenue,
		task.TimeTaken,
		string(task.Status),
		string(task.Priority),
		task.ID,
	)
	if err != nil {
		return false, fmt.Errorf("Error trying to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes the task with the given id and closes the position gap,
// returning the removed task and the position it occupied.
func (r *TaskRepository) Delete(id string) (models.Task, int, bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.Task{}, 0, false, fmt.Errorf("Error trying to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var t models.Task
	var position int
	err = tx.QueryRow(`SELECT id, title, revenue, time_taken, status, priority, position FROM tasks WHERE id = ?`, id).Scan(
		&t.ID,
		&t.Title,
		&t.Revenue,
		&t.TimeTaken,
		&t.Status,
		&t.Priority,
		&position,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, 0, false, nil
	}
	if err != nil {
		return models.Task{}, 0, false, fmt.Errorf("Error trying to get task: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return models.Task{}, 0, false, fmt.Errorf("Error trying to delete task: %w", err)
	}
	if _, err := tx.Exec(`UPDATE tasks SET position = position - 1 WHERE position > ?`, position); err != nil {
		return models.Task{}, 0, false, fmt.Errorf("Error trying to shift tasks: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Task{}, 0, false, err
	}
	return t, position, true, nil
}
