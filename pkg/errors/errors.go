package errors

import (
	"fmt"
	"strings"
)

// ErrorCode identifies the failure classes an evolutionary run can hit.
type ErrorCode int

const (
	// Unknown covers errors that originate outside the engine.
	Unknown ErrorCode = iota

	// InvalidConfiguration marks parameter validation failures before a
	// run starts.
	InvalidConfiguration

	// InitializationFailed marks a generation-0 construction failure; the
	// whole run aborts rather than continue with a partial population.
	InitializationFailed

	// ScoringFailed marks a single candidate's evaluation failure. These
	// are recovered: the candidate receives the sentinel fitness and the
	// run continues.
	ScoringFailed

	// ScoringExhausted marks a generation in which every candidate failed
	// scoring, leaving no viable parents.
	ScoringExhausted

	// ReproductionFailed marks a reproduction slot that could not be
	// filled after a retry.
	ReproductionFailed

	// Canceled marks context cancellation detected mid-operation.
	Canceled
)

// Error is a structured error carrying a code plus diagnostic fields such
// as the generation index and engine phase where the failure occurred.
type Error struct {
	code     ErrorCode
	message  string
	original error
	fields   Fields
}

// Fields carries structured context about the error.
type Fields map[string]interface{}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.message)

	if e.original != nil {
		b.WriteString(": ")
		b.WriteString(e.original.Error())
	}

	if len(e.fields) > 0 {
		b.WriteString(" [")
		for k, v := range e.fields {
			fmt.Fprintf(&b, "%s=%v ", k, v)
		}
		b.WriteString("]")
	}

	return strings.TrimSpace(b.String())
}

func (e *Error) Unwrap() error {
	return e.original
}

func (e *Error) Code() ErrorCode {
	return e.code
}

// New creates a new error with a code and message.
func New(code ErrorCode, message string) error {
	return &Error{
		code:    code,
		message: message,
	}
}

// Wrap wraps an existing error with additional context. Returns nil when
// err is nil so call sites can wrap unconditionally.
func Wrap(err error, code ErrorCode, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		code:     code,
		message:  message,
		original: err,
	}
}

// WithFields attaches structured context to an error. Existing fields are
// preserved; colliding keys take the new value.
func WithFields(err error, fields Fields) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		merged := make(Fields, len(e.fields)+len(fields))
		for k, v := range e.fields {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}

		return &Error{
			code:     e.code,
			message:  e.message,
			original: e.original,
			fields:   merged,
		}
	}

	return &Error{
		code:     Unknown,
		message:  err.Error(),
		original: err,
		fields:   fields,
	}
}

// Is matches errors by code, so errors.Is(err, New(ScoringExhausted, ""))
// style sentinels work across wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.code == t.code
}

// As implements error type casting for errors.As.
func (e *Error) As(target interface{}) bool {
	errorPtr, ok := target.(**Error)
	if !ok {
		return false
	}
	*errorPtr = e
	return true
}

// Fields returns a copy of the structured context attached to the error.
func (e *Error) Fields() Fields {
	if e.fields == nil {
		return Fields{}
	}
	fields := make(Fields, len(e.fields))
	for k, v := range e.fields {
		fields[k] = v
	}
	return fields
}
