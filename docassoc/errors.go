package docassoc

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine.
var (
	// ErrScan indicates the source could not be split into units. It is
	// fatal for the current file. Use [errors.As] with [*ScanError] to get
	// the position.
	ErrScan = errors.New("scan")
	// ErrAmbiguous indicates a statement matched no known declaration
	// shape. The statement is excluded from results.
	ErrAmbiguous = errors.New("ambiguous declaration")
	// ErrNotDocumentable indicates a recognized shape that is not subject
	// to documentation checks (variables, friend declarations, using
	// directives, explicit instantiations and similar).
	ErrNotDocumentable = errors.New("not documentable")
	// ErrInvalidOption indicates an invalid configuration value.
	ErrInvalidOption = errors.New("invalid option")
	// ErrReadInput indicates an I/O error while reading source input.
	ErrReadInput = errors.New("read input")
	// ErrWriteOutput indicates an I/O error while writing output.
	ErrWriteOutput = errors.New("write output")
)

// ScanError describes malformed input: an unterminated comment or literal,
// a statement without terminator, or unbalanced braces.
type ScanError struct {
	Reason string
	Pos    Position
}

// Error implements error.
func (e *ScanError) Error() string {
	return fmt.Sprintf("%v: %d:%d: %s", ErrScan, e.Pos.Line, e.Pos.Column, e.Reason)
}

// Is reports whether target is [ErrScan].
func (e *ScanError) Is(target error) bool {
	return target == ErrScan
}

func scanErrorf(pos Position, format string, args ...any) error {
	return &ScanError{Pos: pos, Reason: fmt.Sprintf(format, args...)}
}
