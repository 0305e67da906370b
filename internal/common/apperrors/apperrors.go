// internal/common/apperrors/apperrors.go
// Application error taxonomy shared across features.
// Centralizing the kinds keeps handler-level HTTP mapping in one place
// and lets every authorization check fail closed with an explicit reason.

package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	KindInternal Kind = iota
	KindNotAuthenticated
	KindAccountNotFound
	KindAccountBanned
	KindAccountDeleted
	KindAccountSuspended
	KindResourceNotFound
	KindAccessDenied
	KindMalformedRequest
	KindDuplicateRelationship
)

// String returns a stable name for logging and metrics labels
func (k Kind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindAccountNotFound:
		return "account_not_found"
	case KindAccountBanned:
		return "account_banned"
	case KindAccountDeleted:
		return "account_deleted"
	case KindAccountSuspended:
		return "account_suspended"
	case KindResourceNotFound:
		return "resource_not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindMalformedRequest:
		return "malformed_request"
	case KindDuplicateRelationship:
		return "duplicate_relationship"
	default:
		return "internal"
	}
}

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, server-side only
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

// New creates a classified error
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Internal wraps a data-layer or infrastructure fault.
// Callers must treat it as a denial, never an implicit allow.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf extracts the kind from an error chain.
// Unclassified errors are internal faults.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a kind to its HTTP status code
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotAuthenticated:
		return http.StatusUnauthorized
	case KindAccountNotFound, KindResourceNotFound:
		return http.StatusNotFound
	case KindAccountBanned, KindAccountDeleted, KindAccountSuspended, KindAccessDenied:
		return http.StatusForbidden
	case KindMalformedRequest:
		return http.StatusBadRequest
	case KindDuplicateRelationship:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to send to a client.
// Internal faults are deliberately withheld and replaced with a generic message.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "something went wrong"
}
