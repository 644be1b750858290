package orbit

import (
	"fmt"
	"math"
)

// DomainError reports a numeric input outside its mathematically valid
// domain (non-positive semi-major axis, non-finite coordinate, ...).
// It is fatal to the operation that raised it and is never retried.
type DomainError struct {
	Quantity   string  // which input, e.g. "semi_major_axis_km"
	Value      float64 // the offending value
	Constraint string  // the violated constraint, e.g. "must be > 0"
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: %s = %g %s", e.Quantity, e.Value, e.Constraint)
}

// CheckFinite returns a *DomainError when v is NaN or infinite.
func CheckFinite(quantity string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &DomainError{Quantity: quantity, Value: v, Constraint: "must be finite"}
	}
	return nil
}
