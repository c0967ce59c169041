package auth

import "errors"

// Code classifies authentication failures so callers can branch without
// string matching.
type Code string

const (
	CodeInvalidCredentials  Code = "invalid-credentials"
	CodeEmailInUse          Code = "email-in-use"
	CodeNoAccount           Code = "no-account"
	CodeWeakPassword        Code = "weak-password"
	CodeRequiresRecentLogin Code = "requires-recent-login"
	CodeUnsupported         Code = "unsupported"
)

// Error is an authentication failure. Message is user-facing and surfaced
// verbatim near the triggering form.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return "auth: " + e.Message
}

// IsCode reports whether err is an auth Error with the given code.
func IsCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
