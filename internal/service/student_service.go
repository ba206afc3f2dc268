package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lessonkit/internal/domain"
	"github.com/phrazzld/lessonkit/internal/store"
)

// StudentSummary is a student together with the mean of their grades.
type StudentSummary struct {
	domain.Student
	Average float64 `json:"average"`
}

// StudentService reads student records, creating sample records on first use.
type StudentService struct {
	store  store.StudentStore
	logger *slog.Logger
}

// NewStudentService creates a student service.
func NewStudentService(studentStore store.StudentStore, logger *slog.Logger) (*StudentService, error) {
	if studentStore == nil {
		return nil, fmt.Errorf("%w: student store", ErrMissingDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentService{
		store:  studentStore,
		logger: logger.With(slog.String("component", "student_service")),
	}, nil
}

// List returns every student with their average grade. When nothing has
// been saved yet the sample students are written and returned.
func (s *StudentService) List(ctx context.Context) ([]StudentSummary, error) {
	students, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		students = domain.SampleStudents()
		if err := s.store.Save(ctx, students); err != nil {
			return nil, NewServiceError("student", "create_samples", err)
		}
		s.logger.Info("sample students created", slog.Int("count", len(students)))
	} else if err != nil {
		return nil, NewServiceError("student", "load", err)
	}

	out := make([]StudentSummary, 0, len(students))
	for _, st := range students {
		if err := st.Validate(); err != nil {
			s.logger.Warn("skipping invalid student record",
				slog.Int("student_id", st.ID),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, StudentSummary{Student: st, Average: st.AverageGrade()})
	}
	return out, nil
}
