package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Roster field limits
const (
	MaxRosterNameLength    = 100
	MaxRosterSpeciesLength = 50
	MinRosterAge           = 0
	MaxRosterAge           = 1000
)

// RosterMember is one crew member in the roster database.
type RosterMember struct {
	ID        int64     `json:"id" yaml:"-"`
	Name      string    `json:"name" yaml:"name"`
	Species   string    `json:"species" yaml:"species"`
	Age       int       `json:"age" yaml:"age"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}

// NewRosterMember builds and validates a member that has not been stored yet.
func NewRosterMember(name, species string, age int) (*RosterMember, error) {
	m := &RosterMember{Name: name, Species: species, Age: age}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks name, species and age.
func (m *RosterMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: roster name", ErrEmptyName)
	}
	if n := utf8.RuneCountInString(m.Name); n > MaxRosterNameLength {
		return fmt.Errorf("%w: name too long: %d chars (max %d)", ErrValidation, n, MaxRosterNameLength)
	}
	if strings.TrimSpace(m.Species) == "" {
		return fmt.Errorf("%w: species cannot be empty", ErrValidation)
	}
	if n := utf8.RuneCountInString(m.Species); n > MaxRosterSpeciesLength {
		return fmt.Errorf("%w: species name too long: %d chars (max %d)", ErrValidation, n, MaxRosterSpeciesLength)
	}
	if m.Age < MinRosterAge || m.Age > MaxRosterAge {
		return fmt.Errorf("%w: age %d not in %d..%d", ErrOutOfRange, m.Age, MinRosterAge, MaxRosterAge)
	}
	return nil
}

// RosterUpdate names the fields to change; nil fields are left alone.
type RosterUpdate struct {
	Name    *string `json:"name,omitempty"`
	Species *string `json:"species,omitempty"`
	Age     *int    `json:"age,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u RosterUpdate) IsEmpty() bool {
	return u.Name == nil && u.Species == nil && u.Age == nil
}

// Apply returns a copy of m with the update applied and validated.
func (u RosterUpdate) Apply(m RosterMember) (RosterMember, error) {
	if u.IsEmpty() {
		return RosterMember{}, ErrNoFieldsToUpdate
	}
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Species != nil {
		m.Species = *u.Species
	}
	if u.Age != nil {
		m.Age = *u.Age
	}
	if err := m.Validate(); err != nil {
		return RosterMember{}, err
	}
	return m, nil
}

// RosterStatistics summarizes the roster.
type RosterStatistics struct {
	Total   int            `json:"total"`
	Species map[string]int `json:"species,omitempty"`
	AgeMin  int            `json:"age_min"`
	AgeMax  int            `json:"age_max"`
	AgeAvg  float64        `json:"age_avg"`
}
