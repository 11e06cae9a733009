package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BishwajeetPatel/task-glitch/internal/models"
	"github.com/BishwajeetPatel/task-glitch/internal/repository"
)

// LoadState tracks the one-shot seed load.
type LoadState int

const (
	StateIdle LoadState = iota
	StateLoading
	StateReady
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// ErrClosed is returned by Load after the service has been torn down.
var ErrClosed = errors.New("task service is closed")

// SeedSource yields the raw records the canonical list is seeded from.
type SeedSource interface {
	Fetch(ctx context.Context) ([]models.RawTask, error)
}

type undoEntry struct {
	task     models.Task
	position int
}

// TaskService owns the canonical task list and the undo slot. Every
// mutation goes through it and all operations are serialized, so callers
// never observe partial state.
type TaskService struct {
	repo   *repository.TaskRepository
	source SeedSource

	mu      sync.Mutex
	state   LoadState
	loadErr error
	closed  bool
	undo    *undoEntry
}

func NewTaskService(repo *repository.TaskRepository, source SeedSource) *TaskService {
	return &TaskService{repo: repo, source: source}
}

// Load fetches the seed source, normalizes it, and installs the canonical
// list. It runs at most once per service: any later call returns the
// recorded outcome without re-fetching, and a fetch still in flight when
// Close is called is discarded.
func (s *TaskService) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.state != StateIdle {
		err := s.loadErr
		s.mu.Unlock()
		return err
	}
	s.state = StateLoading
	s.mu.Unlock()

	records, fetchErr := s.source.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state != StateLoading {
		return nil
	}

	if fetchErr != nil {
		s.state = StateError
		s.loadErr = fmt.Errorf("Error trying to load seed data: %w", fetchErr)
		return s.loadErr
	}
	if err := s.repo.ReplaceAll(Normalize(records)); err != nil {
		s.state = StateError
		s.loadErr = err
		return s.loadErr
	}

	s.state = StateReady
	return nil
}

// State reports where the seed load stands.
func (s *TaskService) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the load failure, if any.
func (s *TaskService) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Close marks the service torn down. The result of an in-flight Load is
// discarded instead of being applied to a closed service.
func (s *TaskService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// AddTask validates input and appends it to the canonical list.
func (s *TaskService) AddTask(input TaskInput) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := NormalizeInput(input)
	if err := s.repo.Insert(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// TaskPatch updates only its non-nil fields. An unrecognized status or
// priority value leaves the stored value unchanged.
type TaskPatch struct {
	Title     *string
	Revenue   *float64
	TimeTaken *float64
	Status    *string
	Priority  *string
}

// UpdateTask applies patch to the task with the given id. It reports false
// when no task has that id; it never creates one.
func (s *TaskService) UpdateTask(id string, patch TaskPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok, err := s.repo.Get(id)
	if err != nil || !ok {
		return false, err
	}

	if patch.Title != nil {
		task.Title = normalizeTitle(*patch.Title)
	}
	if patch.Revenue != nil {
		task.Revenue = sanitizeNumber(*patch.Revenue)
	}
	if patch.TimeTaken != nil {
		task.TimeTaken = sanitizeNumber(*patch.TimeTaken)
	}
	if patch.Status != nil {
		if status, ok := models.ParseStatus(*patch.Status); ok {
			task.Status = status
		}
	}
	if patch.Priority != nil {
		if priority, ok := models.ParsePriority(*patch.Priority); ok {
			task.Priority = priority
		}
	}

	return s.repo.Update(task)
}

// DeleteTask removes the task from the canonical list and parks it in the
// undo slot, replacing any previous occupant. It reports false when no task
// has that id.
func (s *TaskService) DeleteTask(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, position, ok, err := s.repo.Delete(id)
	if err != nil || !ok {
		return false, err
	}

	s.undo = &undoEntry{task: task, position: position}
	return true, nil
}

// UndoDelete puts the undo slot occupant back at the position it was
// deleted from, or at the end when the list has shrunk past it, then clears
// the slot. It reports false when the slot is empty.
func (s *TaskService) UndoDelete() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo == nil {
		return false, nil
	}

	if err := s.repo.InsertAt(s.undo.task, s.undo.position); err != nil {
		return false, err
	}
	s.undo = nil
	return true, nil
}

// ClearUndo empties the undo slot without reinserting. The presentation
// layer calls it when the undo affordance expires or is dismissed, so a
// later undo cannot resurrect a stale task.
func (s *TaskService) ClearUndo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo = nil
}

// PendingUndo returns the undo slot occupant, if any.
func (s *TaskService) PendingUndo() (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.undo == nil {
		return models.Task{}, false
	}
	return s.undo.task, true
}

// DerivedView is the sorted-then-filtered projection of the canonical list.
// The full set is sorted before filtering, so changing a filter never
// perturbs the relative order of the tasks that remain visible.
func (s *TaskService) DerivedView(criteria Criteria) ([]models.DerivedTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	derived := make([]models.DerivedTask, len(tasks))
	for i, t := range tasks {
		derived[i] = models.Derive(t)
	}

	view := make([]models.DerivedTask, 0, len(derived))
	for _, t := range SortTasks(derived) {
		if Matches(t, criteria) {
			view = append(view, t)
		}
	}
	return view, nil
}
