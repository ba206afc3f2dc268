package geometry

import (
	"fmt"

	"github.com/phrazzld/lessonkit/internal/domain"
)

// Calculator performs the four basic operations.
type Calculator struct{}

func (Calculator) Add(a, b float64) float64 { return a + b }
func (Calculator) Sub(a, b float64) float64 { return a - b }
func (Calculator) Mul(a, b float64) float64 { return a * b }

// Div returns a / b or ErrDivisionByZero.
func (Calculator) Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, fmt.Errorf("%w: %g / 0", domain.ErrDivisionByZero, a)
	}
	return a / b, nil
}
