package shmap

import (
	"errors"
	"fmt"
)

// Error represents a shmap error with an error code.
type Error struct {
	Code    ErrorCode
	Param   string // offending parameter, when the error names one
	Message string
	Err     error // wrapped error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Param != "" {
		msg = fmt.Sprintf("%s (parameter %q)", msg, e.Param)
	}
	if e.Err != nil {
		return fmt.Sprintf("shmap: %s: %v", msg, e.Err)
	}
	return fmt.Sprintf("shmap: %s", msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode classifies shmap errors.
type ErrorCode int

const (
	// Success indicates the operation completed successfully
	Success ErrorCode = 0

	// ErrInvalidArgument indicates malformed input detectable without
	// touching OS state: an empty name, an undefined enum value,
	// write-only access at creation
	ErrInvalidArgument ErrorCode = -1

	// ErrOutOfRange indicates a value outside supported bounds: a
	// non-positive capacity, or one beyond the address-space ceiling
	ErrOutOfRange ErrorCode = -2

	// ErrPlatformUnsupported indicates the requested feature is
	// categorically unavailable on this platform
	ErrPlatformUnsupported ErrorCode = -3

	// ErrIOFailure indicates a runtime resource condition: a name already
	// in use, or a reservation the kernel refused
	ErrIOFailure ErrorCode = -4

	// ErrUseAfterClose indicates an operation on a closed map or view
	ErrUseAfterClose ErrorCode = -5
)

// Error descriptions
var errorMessages = map[ErrorCode]string{
	Success:                "success",
	ErrInvalidArgument:     "invalid argument",
	ErrOutOfRange:          "value out of range",
	ErrPlatformUnsupported: "not supported on this platform",
	ErrIOFailure:           "resource unavailable",
	ErrUseAfterClose:       "use after close",
}

// NewError creates a new Error with the given code.
func NewError(code ErrorCode) *Error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = fmt.Sprintf("unknown error code %d", code)
	}
	return &Error{Code: code, Message: msg}
}

func invalidArgument(param, message string) *Error {
	return &Error{Code: ErrInvalidArgument, Param: param, Message: message}
}

func outOfRange(param, message string) *Error {
	return &Error{Code: ErrOutOfRange, Param: param, Message: message}
}

func platformUnsupported(message string) *Error {
	return &Error{Code: ErrPlatformUnsupported, Message: message}
}

func ioFailure(message string, err error) *Error {
	return &Error{Code: ErrIOFailure, Message: message, Err: err}
}

func useAfterClose(op string) *Error {
	return &Error{Code: ErrUseAfterClose, Message: op + " on closed map"}
}

// IsInvalidArgument returns true if the error is ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return Code(err) == ErrInvalidArgument
}

// IsOutOfRange returns true if the error is ErrOutOfRange.
func IsOutOfRange(err error) bool {
	return Code(err) == ErrOutOfRange
}

// IsPlatformUnsupported returns true if the error is ErrPlatformUnsupported.
func IsPlatformUnsupported(err error) bool {
	return Code(err) == ErrPlatformUnsupported
}

// IsIOFailure returns true if the error is ErrIOFailure.
func IsIOFailure(err error) bool {
	return Code(err) == ErrIOFailure
}

// IsUseAfterClose returns true if the error is ErrUseAfterClose.
func IsUseAfterClose(err error) bool {
	return Code(err) == ErrUseAfterClose
}

// Code returns the error code from an error, or Success for nil.
// Errors that did not originate in shmap report ErrIOFailure.
func Code(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrIOFailure
}

// Param returns the parameter an error names, or "" when it names none.
func Param(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Param
	}
	return ""
}
