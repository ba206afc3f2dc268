package store

import (
	"context"

	"github.com/phrazzld/lessonkit/internal/domain"
)

// TodoStore loads and saves a whole todo list.
type TodoStore interface {
	// Load returns an empty list when nothing has been saved yet.
	Load(ctx context.Context) (*domain.TodoList, error)
	Save(ctx context.Context, list *domain.TodoList) error
}

// BookStore loads and saves the whole book catalogue.
type BookStore interface {
	// Load returns an empty slice when nothing has been saved yet.
	Load(ctx context.Context) ([]domain.Book, error)
	Save(ctx context.Context, books []domain.Book) error
}

// StudentStore loads and saves the student records.
type StudentStore interface {
	// Load returns ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) ([]domain.Student, error)
	Save(ctx context.Context, students []domain.Student) error
}
