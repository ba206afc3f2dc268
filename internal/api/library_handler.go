package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lessonkit/internal/api/shared"
	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/service"
)

// LibraryHandler serves the books catalogue.
type LibraryHandler struct {
	library *service.LibraryService
	logger  *slog.Logger
}

// NewLibraryHandler creates a LibraryHandler.
func NewLibraryHandler(library *service.LibraryService, logger *slog.Logger) *LibraryHandler {
	if library == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("library cannot be nil")
	}
	return &LibraryHandler{library: library, logger: componentLogger(logger, "library_handler")}
}

// ListBooks handles GET /api/books; ?q= searches title, author and genre.
func (h *LibraryHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	var (
		books []domain.Book
		err   error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		books, err = h.library.Search(r.Context(), q)
	} else {
		books, err = h.library.List(r.Context())
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list books")
		return
	}
	if books == nil {
		books = []domain.Book{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, books)
}

// CreateBook handles POST /api/books.
func (h *LibraryHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	var req CreateBookRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	book, err := h.library.Create(r.Context(), domain.Book{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
		Genre:  req.Genre,
		ISBN:   req.ISBN,
		Rating: req.Rating,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, book)
}

// GetBook handles GET /api/books/{id}.
func (h *LibraryHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathInt(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	book, err := h.library.Get(r.Context(), int(id))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// UpdateBook handles PATCH /api/books/{id}.
func (h *LibraryHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	log := requestLogger(r, h.logger)

	id, ok := handlePathInt(w, r, "id", log)
	if !ok {
		return
	}
	var update domain.BookUpdate
	if !decodeAndValidate(w, r, &update, log) {
		return
	}

	book, err := h.library.Update(r.Context(), int(id), update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// DeleteBook handles DELETE /api/books/{id} and returns the removed book.
func (h *LibraryHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathInt(w, r, "id", requestLogger(r, h.logger))
	if !ok {
		return
	}

	book, err := h.library.Delete(r.Context(), int(id))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete book")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, book)
}

// Statistics handles GET /api/books/stats.
func (h *LibraryHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.library.Statistics(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute statistics")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// StudentHandler serves student records.
type StudentHandler struct {
	students *service.StudentService
	logger   *slog.Logger
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(students *service.StudentService, logger *slog.Logger) *StudentHandler {
	if students == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("students cannot be nil")
	}
	return &StudentHandler{students: students, logger: componentLogger(logger, "student_handler")}
}

// ListStudents handles GET /api/students.
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list students")
		return
	}
	if students == nil {
		students = []service.StudentSummary{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, students)
}
