//go:build !ios && !android && (amd64 || arm64)

package z3go

import (
	"errors"
	"fmt"

	"github.com/obinnaokechukwu/z3go/internal/bindings"
)

// Common errors
var (
	// ErrNotLoaded indicates libz3 is not loaded.
	ErrNotLoaded = bindings.ErrNotLoaded

	// ErrLibraryNotFound indicates libz3 could not be located.
	ErrLibraryNotFound = bindings.ErrLibraryNotFound

	// ErrContextClosed indicates the owning context has been torn down.
	ErrContextClosed = errors.New("z3go: context is closed")

	// ErrDisposed indicates the object has already released its handle.
	ErrDisposed = errors.New("z3go: object is disposed")

	// ErrContextMismatch indicates a handle or object does not belong to the
	// context it was used with, or is not of the expected native kind.
	ErrContextMismatch = errors.New("z3go: context mismatch")

	// ErrNilContext indicates a nil *Context was passed to a constructor.
	ErrNilContext = errors.New("z3go: nil context")
)

// MismatchError is returned when a Kind's Check rejects a handle.
type MismatchError struct {
	Kind   string // Kind name that rejected the handle
	Handle Handle // Rejected handle
	Reason string // Why it was rejected
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("z3go: context mismatch: %s handle %#x", e.Kind, uintptr(e.Handle))
	}
	return fmt.Sprintf("z3go: context mismatch: %s handle %#x: %s", e.Kind, uintptr(e.Handle), e.Reason)
}

// Unwrap lets errors.Is match ErrContextMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrContextMismatch
}

// IsMismatch reports whether err is a context-mismatch failure.
func IsMismatch(err error) bool {
	return errors.Is(err, ErrContextMismatch)
}

// ErrorCode is a Z3_error_code value.
type ErrorCode int32

// Z3_error_code values.
const (
	ErrorOK               ErrorCode = 0
	ErrorSort             ErrorCode = 1
	ErrorIndexOutOfBounds ErrorCode = 2
	ErrorInvalidArg       ErrorCode = 3
	ErrorParser           ErrorCode = 4
	ErrorNoParser         ErrorCode = 5
	ErrorInvalidPattern   ErrorCode = 6
	ErrorMemout           ErrorCode = 7
	ErrorFileAccess       ErrorCode = 8
	ErrorInternalFatal    ErrorCode = 9
	ErrorInvalidUsage     ErrorCode = 10
	ErrorDecRef           ErrorCode = 11
	ErrorException        ErrorCode = 12
)

// Error is a failure reported by the native library.
type Error struct {
	Code    ErrorCode // Raw Z3 error code
	Message string    // Message from Z3_get_error_msg
	Op      string    // Operation that failed
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("z3 %s: error code %d", e.Op, e.Code)
	}
	return fmt.Sprintf("z3 %s: %s (code %d)", e.Op, e.Message, e.Code)
}

// Code returns the native error code from err, or ErrorOK if err is not a
// native error.
func Code(err error) ErrorCode {
	var zErr *Error
	if errors.As(err, &zErr) {
		return zErr.Code
	}
	return ErrorOK
}
