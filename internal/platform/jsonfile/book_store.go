package jsonfile

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/spf13/afero"
)

// BookStore keeps the catalogue as a JSON list and copies the previous
// file to path+".backup" before each save.
type BookStore struct {
	doc    document
	logger *slog.Logger
}

// NewBookStore stores the catalogue at path on fs.
func NewBookStore(fs afero.Fs, path string, logger *slog.Logger) *BookStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookStore{
		doc:    document{fs: fs, path: path, entity: "book", backup: true},
		logger: logger.With(slog.String("component", "book_store")),
	}
}

var _ store.BookStore = (*BookStore)(nil)

// Load implements store.BookStore.Load. A missing file is reported as
// store.ErrBookNotFound.
func (s *BookStore) Load(ctx context.Context) ([]domain.Book, error) {
	books := []domain.Book{}
	found, err := s.doc.read(&books)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, store.ErrBookNotFound
	}
	if books == nil {
		books = []domain.Book{}
	}
	s.logger.DebugContext(ctx, "books loaded", slog.Int("count", len(books)))
	return books, nil
}

// Save implements store.BookStore.Save
func (s *BookStore) Save(ctx context.Context, books []domain.Book) error {
	if books == nil {
		books = []domain.Book{}
	}
	if err := s.doc.write(books); err != nil {
		s.logger.ErrorContext(ctx, "failed to save books", slog.String("error", err.Error()))
		return err
	}
	return nil
}
