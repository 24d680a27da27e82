package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return New(KindValidation, "missing_field", fmt.Sprintf("missing required field %s", field))
}

func ErrInvalidField(field, reason string) *Error {
	return New(KindValidation, "invalid_field", fmt.Sprintf("%q %s", field, reason))
}

func ErrFileNotUploaded() *Error {
	return New(KindValidation, "file_not_uploaded", "File not uploaded")
}

func ErrAlreadyVerified() *Error {
	return New(KindValidation, "already_verified", "Verification has already been passed")
}

func ErrEmptyBody() *Error {
	return New(KindValidation, "empty_body", "Body must have at least one field")
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: use this for login failures to avoid user enumeration;
// unknown email and wrong password must be indistinguishable.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "Email or password is wrong")
}

// Login-time rejection of an unverified account.
func ErrEmailNotVerified() *Error {
	return New(KindAuth, "email_not_verified", "Email not verified")
}

// Session-authenticator rejection of an unverified account. Distinct
// message from ErrNotAuthorized: the token and session matched.
func ErrAccountNotVerified() *Error {
	return New(KindAuth, "account_not_verified", "Your account is not verified")
}

// Catch-all for a missing/malformed header, a bad or expired token,
// or a token revoked by logout.
func ErrNotAuthorized() *Error {
	return New(KindAuth, "not_authorized", "Not authorized")
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

// Also returned on owner mismatch so non-owners cannot distinguish a
// foreign contact from a missing one.
func ErrContactNotFound() *Error {
	return New(KindNotFound, "contact_not_found", "Contact not found")
}

func ErrRouteNotFound() *Error {
	return New(KindNotFound, "route_not_found", "Route not found")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrEmailInUse() *Error {
	return New(KindConflict, "email_in_use", "Email in use")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return Wrap(KindRateLimited, "rate_limited", "too many requests", fmt.Errorf("scope %s", scope))
}

// ----------------------
// Infrastructure / internal (500)
// ----------------------

func ErrDBUnavailable(cause error) *Error {
	return Wrap(KindInfrastructure, "db_unavailable", "database unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "random generation failed", cause)
}

func ErrImageInvalid(cause error) *Error {
	return Wrap(KindValidation, "image_invalid", "unsupported image file", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
