package domain

import (
	"fmt"
	"strings"
	"time"
)

// Person is a named person with a birth date.
type Person struct {
	Name      string
	BirthDate time.Time
}

// NewPerson validates the name.
func NewPerson(name string, birthDate time.Time) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: person name", ErrEmptyName)
	}
	return &Person{Name: name, BirthDate: birthDate}, nil
}

// AgeOn returns the age in whole years on the given day. It is 0 for days
// before the birth date.
func (p *Person) AgeOn(day time.Time) int {
	by, bm, bd := p.BirthDate.Date()
	y, m, d := day.Date()
	age := y - by
	if m < bm || (m == bm && d < bd) {
		age--
	}
	return max(age, 0)
}

// Greeting is a short self introduction.
func (p *Person) Greeting(day time.Time) string {
	return fmt.Sprintf("Hi, I'm %s and I'm %d years old.", p.Name, p.AgeOn(day))
}
