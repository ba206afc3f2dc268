// Package geometry provides simple plane shapes and a calculator.
package geometry

import (
	"fmt"
	"math"

	"github.com/phrazzld/lessonkit/internal/domain"
)

// Shape is a closed plane figure.
type Shape interface {
	Area() float64
	Perimeter() float64
}

// Circle is a circle with a non-negative radius.
type Circle struct {
	Radius float64
}

// NewCircle validates the radius.
func NewCircle(radius float64) (Circle, error) {
	if radius < 0 {
		return Circle{}, fmt.Errorf("%w: radius %g", domain.ErrNegativeDimension, radius)
	}
	return Circle{Radius: radius}, nil
}

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

// Circumference is the perimeter of the circle.
func (c Circle) Circumference() float64 { return 2 * math.Pi * c.Radius }

func (c Circle) Perimeter() float64 { return c.Circumference() }

// Square is a square with a non-negative side.
type Square struct {
	Side float64
}

// NewSquare validates the side.
func NewSquare(side float64) (Square, error) {
	if side < 0 {
		return Square{}, fmt.Errorf("%w: side %g", domain.ErrNegativeDimension, side)
	}
	return Square{Side: side}, nil
}

func (s Square) Area() float64      { return s.Side * s.Side }
func (s Square) Perimeter() float64 { return 4 * s.Side }

// Triangle is given by its three side lengths.
type Triangle struct {
	A, B, C float64
}

// NewTriangle requires positive sides satisfying the strict triangle inequality.
func NewTriangle(a, b, c float64) (Triangle, error) {
	if min(a, b, c) <= 0 || a+b <= c || a+c <= b || b+c <= a {
		return Triangle{}, fmt.Errorf("%w: %g, %g, %g", domain.ErrInvalidTriangle, a, b, c)
	}
	return Triangle{A: a, B: b, C: c}, nil
}

func (t Triangle) Perimeter() float64 { return t.A + t.B + t.C }

// Area uses Heron's formula.
func (t Triangle) Area() float64 {
	s := t.Perimeter() / 2
	return math.Sqrt(max(s*(s-t.A)*(s-t.B)*(s-t.C), 0))
}

var (
	_ Shape = Circle{}
	_ Shape = Square{}
	_ Shape = Triangle{}
)
