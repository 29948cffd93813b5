package rental

import "errors"

// Kind is the stable machine-readable classification of a service error.
type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindUnauthenticated     Kind = "unauthenticated"
	KindNotFound            Kind = "not_found"
	KindNotAuthorized       Kind = "not_authorized"
	KindInvalidDateRange    Kind = "invalid_date_range"
	KindPropertyUnavailable Kind = "property_unavailable"
	KindInvalidTransition   Kind = "invalid_transition"
	KindEmailTaken          Kind = "email_taken"
	KindInvalidCredentials  Kind = "invalid_credentials"
	KindInternal            Kind = "internal_error"
)

// Error is a recoverable service error surfaced to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds a service error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the kind from an error. Anything that is not a service
// error is classified as internal so no storage detail leaks to callers.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
