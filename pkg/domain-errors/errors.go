// Package domainerrors carries business-rule failures across layers as coded errors.
//
// Stores return sentinel errors (pkg/platform/sentinel); services translate them into
// coded errors here. Handlers map codes to HTTP statuses with ToHTTPStatus.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a failure. Codes are part of the API contract.
type Code string

const (
	CodeNotFound            Code = "not_found"
	CodeForbidden           Code = "forbidden"
	CodeUnauthorized        Code = "unauthorized"
	CodeQuotaExceeded       Code = "quota_exceeded"
	CodeCapacityExceeded    Code = "capacity_exceeded"
	CodeDuplicateEnrollment Code = "duplicate_enrollment"
	CodeDuplicateInterest   Code = "duplicate_interest"
	CodeInvalidTransition   Code = "invalid_transition"
	CodeBadRequest          Code = "bad_request"
	CodeInvalidInput        Code = "invalid_input"
	CodeConflict            Code = "conflict"
	CodeTimeout             Code = "timeout"
	CodeInternal            Code = "internal_error"
)

// Error is a coded domain error. Message is safe to show to API clients.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and client-safe message to an underlying cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// CodeOf returns the outermost code in the chain, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the outermost coded error in the chain has the given code.
func HasCode(err error, code Code) bool {
	if err == nil {
		return false
	}
	var de *Error
	if !errors.As(err, &de) {
		return false
	}
	return de.Code == code
}

// Is is shorthand for HasCode, kept for handler readability.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus maps a code to the status used by the JSON API.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeQuotaExceeded, CodeCapacityExceeded, CodeDuplicateEnrollment,
		CodeDuplicateInterest, CodeInvalidTransition, CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
