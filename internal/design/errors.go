package design

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request validation failures. Wrap it with
// detail so callers can both match and report
var ErrInvalidInput = errors.New("design: invalid input")

// AssignmentError means no compatible sequence could be found for a
// domain within the attempt budget. The whole design call aborts:
// there is no backtracking over earlier commitments
type AssignmentError struct {
	Domain   string
	Length   int
	Attempts int
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf(
		"design: no compatible sequence for domain %q (length %d) after %d attempts",
		e.Domain, e.Length, e.Attempts)
}
