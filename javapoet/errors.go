package javapoet

import "github.com/cockroachdb/errors"

// Sentinels for the three caller-visible error classes. Match with errors.Is.
var (
	// ErrInvalidArgument marks a builder or constructor call that violated an invariant
	// (bad identifier, primitive bound, duplicate initializer, ...).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTemplate marks a malformed CodeBlock format or an argument mismatch.
	ErrTemplate = errors.New("invalid template")

	// ErrEmitState marks a render aborted by unbalanced indentation or statement markers.
	ErrEmitState = errors.New("invalid emission state")
)

func invalidArgf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrInvalidArgument)
}

func templateErrf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrTemplate)
}

func emitStateErrf(format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), ErrEmitState)
}

// stickyErr keeps the first error reported to a builder. Later calls on a failed
// builder are ignored and Build returns the recorded error.
type stickyErr struct {
	err error
}

func (s *stickyErr) fail(err error) bool {
	if err == nil {
		return false
	}
	if s.err == nil {
		s.err = err
	}
	return true
}

func (s *stickyErr) failed() bool { return s.err != nil }
