package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Student bounds
const (
	MinStudentAge = 0
	MaxStudentAge = 150
	MinGrade      = 0.0
	MaxGrade      = 100.0
)

// Student is a student record with per-subject grades.
type Student struct {
	ID     int                `json:"id"`
	Name   string             `json:"name"`
	Age    int                `json:"age"`
	Grades map[string]float64 `json:"grades"`
	Email  *string            `json:"email"`
}

// Validate checks age, name and every grade.
func (s *Student) Validate() error {
	if s.Age < MinStudentAge || s.Age > MaxStudentAge {
		return fmt.Errorf("%w: age %d not in %d..%d", ErrOutOfRange, s.Age, MinStudentAge, MaxStudentAge)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: student name", ErrEmptyName)
	}
	for _, subject := range s.Subjects() {
		if g := s.Grades[subject]; g < MinGrade || g > MaxGrade {
			return fmt.Errorf("%w: grade for %s: %g", ErrOutOfRange, subject, g)
		}
	}
	return nil
}

// AverageGrade is the mean over all subjects, or 0 without grades.
func (s *Student) AverageGrade() float64 {
	if len(s.Grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range s.Grades {
		sum += g
	}
	return sum / float64(len(s.Grades))
}

// Subjects returns the graded subjects in alphabetical order.
func (s *Student) Subjects() []string {
	out := make([]string, 0, len(s.Grades))
	for subject := range s.Grades {
		out = append(out, subject)
	}
	sort.Strings(out)
	return out
}

// SampleStudents is the roster written when no students file exists yet.
func SampleStudents() []Student {
	email := func(s string) *string { return &s }
	return []Student{
		{ID: 1, Name: "Alice Johnson", Age: 20, Grades: map[string]float64{"math": 85, "physics": 90, "chemistry": 78}, Email: email("alice@example.com")},
		{ID: 2, Name: "Bob Smith", Age: 22, Grades: map[string]float64{"math": 72, "physics": 68, "chemistry": 81}, Email: email("bob@example.com")},
		{ID: 3, Name: "Carol White", Age: 21, Grades: map[string]float64{"math": 95, "physics": 92, "chemistry": 88}},
	}
}
