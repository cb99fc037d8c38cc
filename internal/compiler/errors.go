package compiler

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes compiler failures for clearer handling and messaging.
type ErrorKind string

const (
	// ValidationError: a structural precondition was violated, e.g. client
	// generation requested against a document with zero declared servers.
	ValidationError ErrorKind = "ValidationError"
	// SchemaParseError: a schema node cannot be translated, e.g. a default
	// value of an unsupported runtime kind.
	SchemaParseError ErrorKind = "SchemaParseError"
	// ConfigurationError: formatting configuration outside the recognized
	// option set.
	ConfigurationError ErrorKind = "ConfigurationError"
	// CodeGenerationError: internal consistency failure, e.g. a declaration
	// references a schema name the synthesizer never produced.
	CodeGenerationError ErrorKind = "CodeGenerationError"
)

// Error is the single terminal error type of a compilation run. There is no
// partial output and no retry: the transformation is pure, so retrying an
// identical input reproduces the identical failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Message }
func (e *Error) Unwrap() error { return e.Cause }

// Is reports kind equality so callers can branch with errors.Is on a bare
// &Error{Kind: ...} sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func errValidation(format string, args ...any) *Error {
	return &Error{Kind: ValidationError, Message: fmt.Sprintf(format, args...)}
}

func errSchemaParse(format string, args ...any) *Error {
	return &Error{Kind: SchemaParseError, Message: fmt.Sprintf(format, args...)}
}

// ErrConfiguration builds a ConfigurationError; exported because the emitter
// validates formatting options before compilation proceeds.
func ErrConfiguration(format string, args ...any) *Error {
	return &Error{Kind: ConfigurationError, Message: fmt.Sprintf(format, args...)}
}

func errCodeGen(format string, args ...any) *Error {
	return &Error{Kind: CodeGenerationError, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a compiler error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
