package apperrors

import (
	"errors"
	"fmt"
)

// Kind categorizes an error for transport and user messaging.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindUnauthenticated  Kind = "unauthenticated"
	KindPermissionDenied Kind = "permission-denied"
	KindNotFound         Kind = "not-found"
	KindConflict         Kind = "conflict"
	KindTransient        Kind = "transient"
)

// AppError carries a stable code plus a user-facing message alongside the
// internal cause. Handlers map Kind to an HTTP status; clients map Code to
// retry guidance.
type AppError struct {
	Kind        Kind
	Code        string
	UserMessage string
	Err         error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %v", e.Kind, e.Code, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Code, e.UserMessage)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is lets errors.Is match two AppErrors by code, so sentinel values below
// work through wrapping.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func New(kind Kind, code, userMessage string) *AppError {
	return &AppError{Kind: kind, Code: code, UserMessage: userMessage}
}

// Wrap attaches an internal cause to a copy of a sentinel error.
func Wrap(sentinel *AppError, err error) *AppError {
	return &AppError{
		Kind:        sentinel.Kind,
		Code:        sentinel.Code,
		UserMessage: sentinel.UserMessage,
		Err:         err,
	}
}

// Sentinel errors. The auth set mirrors the conditions the sign-in and
// sign-up forms have to tell apart; the store set mirrors the conditions the
// editor and list views have to tell apart.
var (
	ErrInvalidEmail     = New(KindValidation, "invalid-email", "Enter a valid email address.")
	ErrWeakPassword     = New(KindValidation, "weak-password", "Password must be at least 6 characters.")
	ErrEmailInUse       = New(KindConflict, "email-already-in-use", "This email is already registered.")
	ErrInvalidCredential = New(KindUnauthenticated, "invalid-credential", "Invalid email or password.")
	ErrUnauthenticated  = New(KindUnauthenticated, "unauthenticated", "You must be signed in to do that.")

	ErrPermissionDenied = New(KindPermissionDenied, "permission-denied", "Permission denied. Check your access rules.")
	ErrNotFound         = New(KindNotFound, "not-found", "Record not found.")
	ErrTransient        = New(KindTransient, "transient", "Something went wrong. Please try again.")
)

// IsRetryable reports whether retrying the same operation can succeed
// without the user changing anything but timing.
func IsRetryable(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == KindTransient
	}
	return true
}

// UserMessage returns the message to surface in a form. Unknown errors get
// the generic retry-suggesting message rather than leaking internals.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.UserMessage
	}
	return ErrTransient.UserMessage
}

// CodeOf returns the stable code, or "transient" for unclassified errors.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrTransient.Code
}

// FromCode rebuilds the matching sentinel from a wire code, used by the
// client SDK when decoding error responses.
func FromCode(code string) *AppError {
	for _, sentinel := range []*AppError{
		ErrInvalidEmail, ErrWeakPassword, ErrEmailInUse, ErrInvalidCredential,
		ErrUnauthenticated, ErrPermissionDenied, ErrNotFound,
	} {
		if sentinel.Code == code {
			return sentinel
		}
	}
	return ErrTransient
}
