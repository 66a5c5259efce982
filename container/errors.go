package container

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies container failures.
type ErrorCode uint8

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeServiceNotFound
	ErrCodeParameterNotFound
	ErrCodeAlreadyRegistered
	ErrCodeUnknownExtension
	ErrCodeInvalidConfiguration
	ErrCodeTypeMismatch
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "UNKNOWN",
	ErrCodeServiceNotFound:      "SERVICE_NOT_FOUND",
	ErrCodeParameterNotFound:    "PARAMETER_NOT_FOUND",
	ErrCodeAlreadyRegistered:    "ALREADY_REGISTERED",
	ErrCodeUnknownExtension:     "UNKNOWN_EXTENSION",
	ErrCodeInvalidConfiguration: "INVALID_CONFIGURATION",
	ErrCodeTypeMismatch:         "TYPE_MISMATCH",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the error type returned by every container operation.
// ID carries the offending service id, parameter name, or extension name.
type Error struct {
	Code    ErrorCode
	ID      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.ID != "" {
		b.WriteString(fmt.Sprintf(" %q:", e.ID))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two container errors by code, so callers can write
// errors.Is(err, &Error{Code: ErrCodeServiceNotFound}).
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func (e *Error) withID(id string) *Error {
	e.ID = id
	return e
}

func errServiceNotFound(id string) *Error {
	return newError(
		ErrCodeServiceNotFound,
		fmt.Sprintf("no service registered under id %q", id),
		nil,
	).withID(id)
}

func errParameterNotFound(name string) *Error {
	return newError(
		ErrCodeParameterNotFound,
		fmt.Sprintf("parameter %q is not set", name),
		nil,
	).withID(name)
}

func errAlreadyRegistered(id string) *Error {
	return newError(
		ErrCodeAlreadyRegistered,
		fmt.Sprintf("service %q is already registered", id),
		nil,
	).withID(id)
}

func errExtensionAlreadyRegistered(name string) *Error {
	return newError(
		ErrCodeAlreadyRegistered,
		fmt.Sprintf("extension %q is already registered", name),
		nil,
	).withID(name)
}

func errUnknownExtension(name string) *Error {
	return newError(
		ErrCodeUnknownExtension,
		fmt.Sprintf("extension %q does not resolve to a known extension", name),
		nil,
	).withID(name)
}

func errInvalidConfiguration(cause error) *Error {
	return newError(
		ErrCodeInvalidConfiguration,
		"configuration failed validation",
		cause,
	)
}

func errTypeMismatch(name, message string) *Error {
	return newError(ErrCodeTypeMismatch, message, nil).withID(name)
}

// IsNotFound reports whether err is a missing-service or missing-parameter
// failure.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) &&
		(e.Code == ErrCodeServiceNotFound || e.Code == ErrCodeParameterNotFound)
}

func IsAlreadyRegistered(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAlreadyRegistered
}

func IsUnknownExtension(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnknownExtension
}

func IsInvalidConfiguration(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidConfiguration
}

func IsTypeMismatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTypeMismatch
}
