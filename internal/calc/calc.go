// Package calc implements the arithmetic endpoint's operations.
package calc

import "github.com/ukaji3/tablenorm-go/internal/errors"

// Request is the body of a calculate call. All fields are required.
type Request struct {
	A  *float64 `json:"a"`
	B  *float64 `json:"b"`
	Op *string  `json:"op"`
}

// Validate reports the first missing field.
func (r Request) Validate() error {
	switch {
	case r.A == nil:
		return errors.ValidationError("field \"a\" is required")
	case r.B == nil:
		return errors.ValidationError("field \"b\" is required")
	case r.Op == nil:
		return errors.ValidationError("field \"op\" is required")
	}
	return nil
}

// Response carries the result of a calculate call.
type Response struct {
	Answer float64 `json:"answer"`
}

// Calculate applies op to a and b. Supported operators are + - * and /.
func Calculate(a, b float64, op string) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, errors.DivisionByZero()
		}
		return a / b, nil
	default:
		return 0, errors.UnsupportedOperation()
	}
}
