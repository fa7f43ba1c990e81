// Package desktoperr defines the closed error-code vocabulary every
// component in this module fails with, generalizing the teacher's
// errors.go sentinel-plus-struct idiom and matching the original Rust
// implementation's AdapterError/ErrorCode shape field-for-field.
package desktoperr

import (
	"errors"
	"fmt"

	"github.com/lahfir/agent-desktop-sub000/internal/model"
)

// Code is a member of the closed, agent-consumable error-code set.
type Code string

const (
	PermDenied           Code = "PERM_DENIED"
	ElementNotFound      Code = "ELEMENT_NOT_FOUND"
	AppNotFound          Code = "APP_NOT_FOUND"
	ActionFailed         Code = "ACTION_FAILED"
	ActionNotSupported   Code = "ACTION_NOT_SUPPORTED"
	StaleRef             Code = "STALE_REF"
	WindowNotFound       Code = "WINDOW_NOT_FOUND"
	PlatformNotSupported Code = "PLATFORM_NOT_SUPPORTED"
	Timeout              Code = "TIMEOUT"
	InvalidArgs          Code = "INVALID_ARGS"
	Internal             Code = "INTERNAL"
)

// Error is the concrete error type every component returns. It
// implements the standard error interface and carries the full
// envelope error payload shape.
type Error struct {
	Code           Code
	Message        string
	Suggestion     string
	RetryCommand   string
	PlatformDetail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an Error with no suggestion/retry attached.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting of message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithSuggestion attaches agent-actionable remediation text and
// returns the receiver for chaining.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithRetry attaches a canonical remediation verb invocation.
func (e *Error) WithRetry(cmd string) *Error {
	e.RetryCommand = cmd
	return e
}

// WithPlatformDetail attaches raw host-specific diagnostic text.
func (e *Error) WithPlatformDetail(detail string) *Error {
	e.PlatformDetail = detail
	return e
}

// Payload converts the error into the envelope's error arm.
func (e *Error) Payload() model.ErrorPayload {
	return model.ErrorPayload{
		Code:           string(e.Code),
		Message:        e.Message,
		Suggestion:     e.Suggestion,
		RetryCommand:   e.RetryCommand,
		PlatformDetail: e.PlatformDetail,
	}
}

// As extracts an *Error from err via errors.As, returning ok=false when
// err does not carry one.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// ToPayload converts any error into an envelope error payload,
// classifying anything that is not already a *Error as INTERNAL — the
// dispatcher's IO/JSON/unspecified-failure conversion rule.
func ToPayload(err error) model.ErrorPayload {
	if de, ok := As(err); ok {
		return de.Payload()
	}
	return model.ErrorPayload{Code: string(Internal), Message: err.Error()}
}

// StaleRefError builds the standard STALE_REF failure used by the
// Registry whenever resolution cannot find a live match.
func StaleRefError(handle string) *Error {
	return Newf(StaleRef, "handle %s does not resolve to a live element", handle).
		WithSuggestion("the element may have moved or closed; take a new snapshot").
		WithRetry("snapshot")
}
