package client

import (
	"fmt"
	"net/http"
)

// ErrorTable maps server error codes to display messages.
var ErrorTable = map[string]string{
	"user:not-connected":          "You are not connected",
	"query:bad-format":            "The query is incomplete or corrupted",
	"login:fail":                  "The email/password don't match",
	"pass:too-short":              "The password is too short",
	"email:too-long":              "The email is too long",
	"email:not-found":             "This email is not in the database",
	"email:duplicate":             "This email is already used",
	"email:bad-format":            "The email is not correct",
	"email:not-verified":          "Your email is not verified",
	"username:too-long":           "The username is too long",
	"username:too-short":          "The username is too short",
	"username:duplicate":          "This username is already taken",
	"username:bad-format":         "The username can only contains letters, digits and _",
	"password:bad-code":           "Can not change the password because the secret code and the email do not match",
	"password:already-recovering": "A recovering email has already been sent to this address less than 1 day ago",
}

// Translate returns the display message for code, or code itself when the
// table has no entry. Matching is exact and case-sensitive.
func Translate(code string) string {
	if msg, ok := ErrorTable[code]; ok {
		return msg
	}
	return code
}

// Error is the uniform failure returned by every Client operation except
// for transport errors.
type Error struct {
	// Code is the status reported by the server, or 500 for bodies and
	// payloads the client could not decode.
	Code int
	// Message is the human-readable message.
	Message string
	// Reason is the untranslated server code (or raw body text).
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Is reports whether target is an *Error with the same non-empty Reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason != "" && t.Reason == e.Reason
}

// ErrNotConnected is returned when an operation needs a signed-in user.
var ErrNotConnected = fail(Result{Code: http.StatusUnauthorized, Msg: "user:not-connected"})

// fail converts a failed Result into the error handed to callers.
func fail(r Result) *Error {
	return &Error{Code: r.Code, Reason: r.Msg, Message: Translate(r.Msg)}
}

// malformed reports a response whose envelope decoded but whose payload
// did not have the expected shape.
func malformed(path string, err error) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Reason:  err.Error(),
		Message: fmt.Sprintf("malformed %s response: %v", path, err),
	}
}
