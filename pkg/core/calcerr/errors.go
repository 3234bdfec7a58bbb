// Package calcerr defines the error taxonomy shared by the calculation core.
// Business-rule failures are never errors in this sense: they travel as typed
// results with a canonical reason string. Only the two conditions below abort
// a call, and both indicate a defect to investigate rather than a normal
// business outcome.
package calcerr

import (
	"errors"
	"fmt"
)

// DataError reports a required input field that is missing or unusable.
// It is raised before any computation starts; no partial result exists.
type DataError struct {
	Field string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("missing or invalid required field %q", e.Field)
}

// ComputationError reports an iterative solver that exhausted its iteration
// bound without converging. The bound exists purely as a termination
// guarantee; hitting it means an upstream invariant was violated (for
// example a rate far outside sane bounds).
type ComputationError struct {
	Op         string
	Iterations int
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: no convergence after %d iterations", e.Op, e.Iterations)
}

// IsDataError reports whether err is (or wraps) a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}

// IsComputationError reports whether err is (or wraps) a ComputationError.
func IsComputationError(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}
