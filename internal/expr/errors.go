package expr

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Errors raised (as panics) by expression construction and assignment.
// They are wrapped with the offending shapes; use errors.Is to match them.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrUnsupportedRank = errors.New("unsupported rank")
	ErrEmptyInput      = errors.New("empty input")
)

func panicShapeMismatch(format string, args ...any) {
	panic(errors.Wrapf(ErrShapeMismatch, format, args...))
}

func panicUnsupportedRank(format string, args ...any) {
	panic(errors.Wrapf(ErrUnsupportedRank, format, args...))
}

func panicEmptyInput(format string, args ...any) {
	panic(errors.Wrapf(ErrEmptyInput, format, args...))
}

// Try runs fn and returns the error it panicked with, or nil.
// Panics that do not carry an error are not recovered.
//
// Example:
//
//	err := expr.Try(func() { expr.BiasAdd(expr.Mat(m), expr.Vec(v)) })
//	if errors.Is(err, expr.ErrShapeMismatch) { ... }
func Try(fn func()) error {
	return exceptions.TryCatch[error](fn)
}
