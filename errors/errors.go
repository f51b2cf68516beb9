// Package errors provides error handling for stubgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI output
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := os.MkdirAll(dir, 0o755); err != nil {
//	    return errors.Wrapf(err, "failed to create %s", dir)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'stubgen generate' to refresh the stubs")
//
//	// Check errors
//	if errors.Is(err, errors.ErrUnregisteredType) {
//	    // a methods block referenced a type nobody registered
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
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
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors shared across stubgen.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnregisteredType indicates a methods block whose identity key matches
	// no registered class or enum
	ErrUnregisteredType = New("methods registered for unknown type")

	// ErrDuplicate indicates two shape descriptors claimed the same identity key,
	// or two variables the same module-level name
	ErrDuplicate = New("duplicate descriptor")

	// ErrInvalidDescriptor indicates a descriptor that cannot be built at all
	ErrInvalidDescriptor = New("invalid descriptor")

	// ErrInvalidManifest indicates a descriptor manifest that failed to decode
	ErrInvalidManifest = New("invalid manifest")

	// ErrOutOfDate indicates generated stubs differ from the ones on disk
	ErrOutOfDate = New("stubs are out of date")
)

// IsUnregisteredType checks if an error is or wraps ErrUnregisteredType
func IsUnregisteredType(err error) bool {
	return err != nil && Is(err, ErrUnregisteredType)
}

// IsDuplicate checks if an error is or wraps ErrDuplicate
func IsDuplicate(err error) bool {
	return err != nil && Is(err, ErrDuplicate)
}

// IsOutOfDate checks if an error is or wraps ErrOutOfDate
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewDuplicatef creates a duplicate-descriptor error with a formatted message
func NewDuplicatef(format string, args ...interface{}) error {
	return Wrap(ErrDuplicate, Newf(format, args...).Error())
}

// NewInvalidDescriptorf creates an invalid-descriptor error with a formatted message
func NewInvalidDescriptorf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidDescriptor, Newf(format, args...).Error())
}

// NewInvalidManifestf creates an invalid-manifest error with a formatted message
func NewInvalidManifestf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidManifest, Newf(format, args...).Error())
}
