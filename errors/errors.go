// Package errors provides error handling for classgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for the person writing a class description
//   - Marking errors with a sentinel without changing their message
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Classify against the generator taxonomy
//	return errors.NewConflictError("superclass already set to %s", name)
//
//	// Check errors
//	if errors.Is(err, errors.ErrConflict) {
//	    // handle configuration conflict
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New           = crdb.New
	Newf          = crdb.Newf
	Wrap          = crdb.Wrap
	Wrapf         = crdb.Wrapf
	WithStack     = crdb.WithStack
	WithMessage   = crdb.WithMessage
	WithMessagef  = crdb.WithMessagef
	Mark          = crdb.Mark
	CombineErrors = crdb.CombineErrors
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generator. Errors returned by builders and loaders
// are marked with one of these; test with errors.Is().
var (
	// ErrConflict indicates a singular attribute was set more than once
	ErrConflict = New("configuration conflict")

	// ErrKindMismatch indicates a function spec of the wrong kind was supplied
	// (a plain function as the constructor, or a constructor as a function)
	ErrKindMismatch = New("kind mismatch")

	// ErrAbstractViolation indicates an abstract member in a non-abstract class
	ErrAbstractViolation = New("abstract member in non-abstract class")

	// ErrInvalidModifier indicates a modifier that is not legal in its position
	ErrInvalidModifier = New("invalid modifier")

	// ErrInvalidName indicates an empty or malformed identifier
	ErrInvalidName = New("invalid name")

	// ErrInvalidFormat indicates a malformed code block format string
	ErrInvalidFormat = New("invalid format")

	// ErrUnsupportedTarget indicates a construct the configured TypeScript target cannot express
	ErrUnsupportedTarget = New("unsupported by target")

	// ErrInvalidDescription indicates a class description file that cannot be turned into a spec
	ErrInvalidDescription = New("invalid description")
)

// NewConflictError creates an error marked with ErrConflict
func NewConflictError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrConflict)
}

// NewKindMismatchError creates an error marked with ErrKindMismatch
func NewKindMismatchError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrKindMismatch)
}

// NewAbstractViolationError creates an error marked with ErrAbstractViolation
func NewAbstractViolationError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrAbstractViolation)
}

// NewInvalidModifierError creates an error marked with ErrInvalidModifier
func NewInvalidModifierError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidModifier)
}

// NewInvalidNameError creates an error marked with ErrInvalidName
func NewInvalidNameError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidName)
}

// NewInvalidFormatError creates an error marked with ErrInvalidFormat
func NewInvalidFormatError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidFormat)
}

// NewUnsupportedTargetError creates an error marked with ErrUnsupportedTarget
func NewUnsupportedTargetError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnsupportedTarget)
}

// WrapInvalidDescription wraps an error as an invalid-description error with context
func WrapInvalidDescription(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrInvalidDescription)
}

// IsBuildError reports whether err comes from spec validation rather than I/O
func IsBuildError(err error) bool {
	return err != nil && IsAny(err,
		ErrConflict,
		ErrKindMismatch,
		ErrAbstractViolation,
		ErrInvalidModifier,
		ErrInvalidName,
		ErrInvalidFormat,
	)
}
