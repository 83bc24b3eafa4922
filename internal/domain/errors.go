package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling in the
// HTTP layer without per-handler switch statements.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a requested content key has no backing file
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input (bad locale tag, bad query params)
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates a missing or invalid preview token
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrCompile      = errors.New("compile failed")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// CompileError indicates malformed document markup: an unclosed component
// tag, an invalid prop, a duplicate section id, or broken frontmatter.
// It is surfaced by the build command so broken content blocks publishing
// instead of reaching readers.
type CompileError struct {
	File    string // source file path, relative to the content root
	Line    int    // 1-based line number of the offending construct (0 if unknown)
	Message string
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.File == "" {
		return e.Message
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

// StatusCode implements the HTTPError interface. A compile error reaching
// the request path is a server-side defect, never the client's fault.
func (e *CompileError) StatusCode() int {
	return http.StatusInternalServerError
}

// Is allows errors.Is() to match against ErrCompile
func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}
