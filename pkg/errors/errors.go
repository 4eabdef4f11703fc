// Package errors provides standardized error types for DDL planning.
package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Error codes reported by the compiler and plan packages.
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeParseFailed          = "PARSE_FAILED"
	CodeUnsupportedStatement = "UNSUPPORTED_STATEMENT"
	CodeCanceled             = "CANCELED"
	CodeInternal             = "INTERNAL_ERROR"
	CodeUnimplemented        = "UNIMPLEMENTED"
)

// PlanError represents a planning error with code, message, and optional details.
type PlanError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface.
func (e *PlanError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *PlanError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison.
func (e *PlanError) Is(target error) bool {
	t, ok := target.(*PlanError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a single detail to the error.
func (e *PlanError) WithDetail(key string, value interface{}) *PlanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GRPCStatus lets status.FromError and status.Code recover the gRPC code.
func (e *PlanError) GRPCStatus() *status.Status {
	return status.New(grpcCode(e.Code), e.Error())
}

func grpcCode(code string) codes.Code {
	switch code {
	case CodeInvalidRequest, CodeParseFailed:
		return codes.InvalidArgument
	case CodeUnsupportedStatement, CodeUnimplemented:
		return codes.Unimplemented
	case CodeCanceled:
		return codes.Canceled
	default:
		return codes.Internal
	}
}

// Common errors
var (
	ErrEmptyStatement       = &PlanError{Code: CodeInvalidRequest, Message: "empty statement"}
	ErrUnsupportedStatement = &PlanError{Code: CodeUnsupportedStatement, Message: "unsupported statement"}
	ErrUnknownOperation     = &PlanError{Code: CodeUnimplemented, Message: "no explain table registered for operation"}
)

// New creates a new PlanError with the given code and message.
func New(code, message string) *PlanError {
	return &PlanError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with a PlanError.
func Wrap(err error, code, message string) *PlanError {
	if err == nil {
		return nil
	}
	return &PlanError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, code, format string, args ...interface{}) *PlanError {
	if err == nil {
		return nil
	}
	return &PlanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsInvalidRequest checks if an error is an invalid request error.
func IsInvalidRequest(err error) bool {
	var planErr *PlanError
	if errors.As(err, &planErr) {
		return planErr.Code == CodeInvalidRequest
	}
	return false
}

// GetCode extracts the error code from an error.
func GetCode(err error) string {
	var planErr *PlanError
	if errors.As(err, &planErr) {
		return planErr.Code
	}
	return CodeInternal
}

// GetMessage extracts the error message from an error.
func GetMessage(err error) string {
	var planErr *PlanError
	if errors.As(err, &planErr) {
		return planErr.Message
	}
	return err.Error()
}
