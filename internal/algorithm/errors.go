package algorithm

// ============================================================================
// Algorithm Error Definitions
// Purpose: Errors raised while resolving or running algorithms
// ============================================================================

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAlgorithm indicates a name that matches no registered algorithm
	ErrUnknownAlgorithm = errors.New("algorithm: unknown algorithm")

	// ErrNumericDomain indicates an input outside what an algorithm can represent
	ErrNumericDomain = errors.New("algorithm: input outside numeric domain")
)

// UnknownAlgorithmError carries the offending token.
type UnknownAlgorithmError struct {
	Name string // token as supplied by the caller
	Kind Kind   // kind that was being resolved
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("algorithm: unknown %s algorithm %q", e.Kind, e.Name)
}

func (e *UnknownAlgorithmError) Unwrap() error {
	return ErrUnknownAlgorithm
}
