package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into one of the buckets the HTTP layer
// knows how to translate into a status code.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindConflict          Kind = "CONFLICT"
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindUnexpected        Kind = "UNEXPECTED"
)

// Reason narrows a Kind down to the specific rule that was violated.
type Reason string

const (
	ReasonSelfReferential   Reason = "SELF_REFERENTIAL"
	ReasonDuplicatePairing  Reason = "DUPLICATE_PAIRING"
	ReasonDonorUnavailable  Reason = "DONOR_UNAVAILABLE"
	ReasonMissingSelector   Reason = "MISSING_SELECTOR"
	ReasonUnsupportedAction Reason = "UNSUPPORTED_ACTION"
	ReasonInvalidState      Reason = "INVALID_STATE"
)

// Error is the error type returned by the usecase layer.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WithReason creates an error of the given kind carrying a specific reason.
func WithReason(kind Kind, reason Reason, message string) *Error {
	return &Error{Kind: kind, Reason: reason, Message: message}
}

// Wrap marks an underlying failure (repository, driver) as unexpected.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindUnexpected, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindUnexpected for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// ReasonOf returns the reason of err, or the empty reason.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// HTTPStatus maps an error to the status code the REST layer responds with.
// SelfReferential conflicts respond 403 while the other creation conflicts
// respond 409, matching the historical API contract.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		if e.Reason == ReasonSelfReferential {
			return http.StatusForbidden
		}
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidTransition:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
