package jsonfile

import (
	"context"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
	"github.com/spf13/afero"
)

// StudentStore keeps student records as a JSON list.
type StudentStore struct {
	doc    document
	logger *slog.Logger
}

// NewStudentStore stores the records at path on fs.
func NewStudentStore(fs afero.Fs, path string, logger *slog.Logger) *StudentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentStore{
		doc:    document{fs: fs, path: path, entity: "student"},
		logger: logger.With(slog.String("component", "student_store")),
	}
}

var _ store.StudentStore = (*StudentStore)(nil)

// Load implements store.StudentStore.Load
func (s *StudentStore) Load(ctx context.Context) ([]domain.Student, error) {
	var students []domain.Student
	found, err := s.doc.read(&students)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, store.ErrStudentNotFound
	}
	s.logger.DebugContext(ctx, "students loaded", slog.Int("count", len(students)))
	return students, nil
}

// Save implements store.StudentStore.Save
func (s *StudentStore) Save(ctx context.Context, students []domain.Student) error {
	if students == nil {
		students = []domain.Student{}
	}
	if err := s.doc.write(students); err != nil {
		s.logger.ErrorContext(ctx, "failed to save students", slog.String("error", err.Error()))
		return err
	}
	return nil
}
