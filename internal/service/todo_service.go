package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
)

// CompletionOutcome describes what MarkComplete did.
type CompletionOutcome string

// Possible completion outcomes
const (
	OutcomeNotFound         CompletionOutcome = "not found"
	OutcomeAlreadyCompleted CompletionOutcome = "already completed"
	OutcomeCompleted        CompletionOutcome = "marked as complete"
)

// TodoService keeps one todo list in memory and saves it after each change.
type TodoService struct {
	mu     sync.Mutex
	list   *domain.TodoList
	store  store.TodoStore
	logger *slog.Logger
}

// NewTodoService loads the list from the store.
func NewTodoService(ctx context.Context, todoStore store.TodoStore, logger *slog.Logger) (*TodoService, error) {
	if todoStore == nil {
		return nil, fmt.Errorf("%w: todo store", ErrMissingDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	list, err := todoStore.Load(ctx)
	if err != nil {
		return nil, NewServiceError("todo", "load", err)
	}
	return &TodoService{
		list:   list,
		store:  todoStore,
		logger: logger.With(slog.String("component", "todo_service")),
	}, nil
}

// Add creates a task. dueDate may be nil.
func (s *TodoService) Add(ctx context.Context, title, description string, dueDate *time.Time) (domain.TodoTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.list.Add(title, description, dueDate)
	if err != nil {
		return domain.TodoTask{}, err
	}
	if err := s.save(ctx, "add"); err != nil {
		s.list.Delete(task.ID)
		return domain.TodoTask{}, err
	}
	return task, nil
}

// Get returns a task or store.ErrTodoNotFound.
func (s *TodoService) Get(_ context.Context, id int) (domain.TodoTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.list.Get(id)
	if !ok {
		return domain.TodoTask{}, fmt.Errorf("%w: id %d", store.ErrTodoNotFound, id)
	}
	return task, nil
}

// MarkComplete marks a task done. The error is only set when saving fails.
func (s *TodoService) MarkComplete(ctx context.Context, id int) (CompletionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, _ := s.list.Get(id)
	switch err := s.list.MarkComplete(id); {
	case errors.Is(err, domain.ErrTodoNotFound):
		return OutcomeNotFound, nil
	case errors.Is(err, domain.ErrTodoAlreadyCompleted):
		return OutcomeAlreadyCompleted, nil
	case err != nil:
		return "", err
	}
	if err := s.save(ctx, "mark_complete"); err != nil {
		s.list.Restore(before)
		return "", err
	}
	return OutcomeCompleted, nil
}

// Delete removes a task and reports whether it existed.
func (s *TodoService) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, ok := s.list.Get(id)
	if !ok {
		return false, nil
	}
	s.list.Delete(id)
	if err := s.save(ctx, "delete"); err != nil {
		s.list.Restore(before)
		return false, err
	}
	return true, nil
}

// ListAll returns every task ordered by id.
func (s *TodoService) ListAll(_ context.Context) []domain.TodoTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.ListAll()
}

// ListIncomplete returns the pending tasks ordered by id.
func (s *TodoService) ListIncomplete(_ context.Context) []domain.TodoTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.ListIncomplete()
}

func (s *TodoService) save(ctx context.Context, op string) error {
	if err := s.store.Save(ctx, s.list); err != nil {
		s.logger.Error("failed to save todo list",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return NewServiceError("todo", op, err)
	}
	return nil
}
