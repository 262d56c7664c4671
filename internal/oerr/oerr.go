// Package oerr defines the error-kind taxonomy shared across OASIS
// subsystems. Every operation returns a plain Go error; callers that need
// to branch on failure category use Is / Kind rather than type assertions
// on concrete error types.
package oerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the taxonomy buckets used throughout
// the core: Vfs, Backend, Command, Io.
type Kind int

const (
	// KindVfs covers missing paths, wrong node kind, non-empty directory
	// removal, and other virtual-filesystem failures.
	KindVfs Kind = iota
	// KindBackend covers rendering/texture errors, network failures,
	// protocol errors, and unsupported schemes.
	KindBackend
	// KindCommand covers unknown commands, bad arguments, script parse
	// errors, recursion limits, and missing variables.
	KindCommand
	// KindIo wraps a platform I/O error, preserving its kind.
	KindIo
)

func (k Kind) String() string {
	switch k {
	case KindVfs:
		return "vfs"
	case KindBackend:
		return "backend"
	case KindCommand:
		return "command"
	case KindIo:
		return "io"
	default:
		return "unknown"
	}
}

// Error is a typed, wrappable error carrying one of the Kind buckets.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a Kind-tagged error from a message, plain fmt.Errorf style
// rather than a builder/options API.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds a Kind-tagged error with formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind to an underlying error, preserving it for errors.Unwrap.
func Wrap(kind Kind, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Is reports whether err (or anything it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
