package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
)

// LibraryService manages the book catalogue. The catalogue is read from the
// store on every call and written back after every change.
type LibraryService struct {
	mu     sync.Mutex
	store  store.BookStore
	now    func() time.Time
	logger *slog.Logger
}

// NewLibraryService creates a library service. A nil clock uses time.Now.
func NewLibraryService(bookStore store.BookStore, now func() time.Time, logger *slog.Logger) (*LibraryService, error) {
	if bookStore == nil {
		return nil, fmt.Errorf("%w: book store", ErrMissingDependency)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryService{
		store:  bookStore,
		now:    now,
		logger: logger.With(slog.String("component", "library_service")),
	}, nil
}

// Create validates and stores a new book with the next free id.
// A book with the same title and author is rejected with store.ErrBookExists.
func (s *LibraryService) Create(ctx context.Context, book domain.Book) (domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	if err := book.Validate(s.now()); err != nil {
		return domain.Book{}, err
	}

	nextID := 1
	for i := range books {
		if books[i].SameWork(book.Title, book.Author) {
			return domain.Book{}, fmt.Errorf("%w: %q by %s", store.ErrBookExists, book.Title, book.Author)
		}
		nextID = max(nextID, books[i].ID+1)
	}
	book.ID = nextID

	if err := s.save(ctx, append(books, book)); err != nil {
		return domain.Book{}, err
	}
	s.logger.Info("book created", slog.Int("book_id", book.ID))
	return book, nil
}

// List returns every book ordered by id.
func (s *LibraryService) List(ctx context.Context) ([]domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Get returns the book with the given id.
func (s *LibraryService) Get(ctx context.Context, id int) (domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	i, err := find(books, id)
	if err != nil {
		return domain.Book{}, err
	}
	return books[i], nil
}

// Search matches query against title, author and genre, ignoring case.
func (s *LibraryService) Search(ctx context.Context, query string) ([]domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Book{}
	for i := range books {
		if books[i].Matches(query) {
			out = append(out, books[i])
		}
	}
	return out, nil
}

// Update applies the named fields. Nothing is written if the result is invalid.
func (s *LibraryService) Update(ctx context.Context, id int, update domain.BookUpdate) (domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	i, err := find(books, id)
	if err != nil {
		return domain.Book{}, err
	}
	updated, err := update.Apply(books[i], s.now())
	if err != nil {
		return domain.Book{}, err
	}
	books[i] = updated
	if err := s.save(ctx, books); err != nil {
		return domain.Book{}, err
	}
	return updated, nil
}

// Delete removes a book and returns it.
func (s *LibraryService) Delete(ctx context.Context, id int) (domain.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return domain.Book{}, err
	}
	i, err := find(books, id)
	if err != nil {
		return domain.Book{}, err
	}
	deleted := books[i]
	if err := s.save(ctx, append(books[:i], books[i+1:]...)); err != nil {
		return domain.Book{}, err
	}
	s.logger.Info("book deleted", slog.Int("book_id", id))
	return deleted, nil
}

// Statistics summarizes the catalogue.
func (s *LibraryService) Statistics(ctx context.Context) (domain.BookStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return domain.BookStatistics{}, err
	}
	return domain.ComputeBookStatistics(books), nil
}

// load reads the catalogue, writing the sample books first when nothing has
// been saved yet. Records that fail validation are logged and dropped.
func (s *LibraryService) load(ctx context.Context) ([]domain.Book, error) {
	stored, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		stored = domain.SampleBooks()
		if err := s.store.Save(ctx, stored); err != nil {
			return nil, NewServiceError("library", "create_samples", err)
		}
		s.logger.Info("sample books created", slog.Int("count", len(stored)))
	} else if err != nil {
		return nil, NewServiceError("library", "load", err)
	}

	now := s.now()
	books := make([]domain.Book, 0, len(stored))
	for _, b := range stored {
		if err := b.Validate(now); err != nil {
			s.logger.Warn("skipping invalid book record",
				slog.Int("book_id", b.ID),
				slog.String("error", err.Error()))
			continue
		}
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (s *LibraryService) save(ctx context.Context, books []domain.Book) error {
	return NewServiceError("library", "save", s.store.Save(ctx, books))
}

func find(books []domain.Book, id int) (int, error) {
	for i := range books {
		if books[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %d", store.ErrBookNotFound, id)
}
