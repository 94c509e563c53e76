package apperr

import "errors"

// Kind classifies a business error so the transport layer can map it to
// a status code without inspecting message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAuthorization
	KindInvalidState
	KindConflict
	KindInvalidToken
	KindRevokedToken
	KindExpiredToken
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func NotFound(code, message string) *Error {
	return New(KindNotFound, code, message)
}

func Authorization(code, message string) *Error {
	return New(KindAuthorization, code, message)
}

func InvalidState(code, message string) *Error {
	return New(KindInvalidState, code, message)
}

func Conflict(code, message string) *Error {
	return New(KindConflict, code, message)
}

func InvalidToken(code, message string) *Error {
	return New(KindInvalidToken, code, message)
}

func RevokedToken(code, message string) *Error {
	return New(KindRevokedToken, code, message)
}

func ExpiredToken(code, message string) *Error {
	return New(KindExpiredToken, code, message)
}

// KindOf returns the Kind carried by err, or KindUnknown when err is not
// an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// CodeOf returns the machine code carried by err, or "" for foreign errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
