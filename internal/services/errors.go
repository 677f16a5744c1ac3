package services

import "errors"

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a client-facing failure. Message is safe to return verbatim.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrEmailTaken         = &Error{KindConflict, "User with this email already exists"}
	ErrUsernameTaken      = &Error{KindConflict, "Username is already taken"}
	ErrInvalidCredentials = &Error{KindAuth, "Invalid email or password"}
	ErrUserNotFound       = &Error{KindNotFound, "User not found"}
	ErrRecipeNotFound     = &Error{KindNotFound, "Recipe not found"}
	ErrCommentNotFound    = &Error{KindNotFound, "Comment not found"}
	ErrRecipePrivate      = &Error{KindForbidden, "Recipe is private"}
	ErrNotCommentAuthor   = &Error{KindForbidden, "Not authorized to delete this comment"}
	ErrUnauthenticated    = &Error{KindAuth, "Not authorized, no token"}
)

func validationError(err error) error {
	return &Error{Kind: KindValidation, Message: err.Error()}
}

func forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// AsError unwraps err into a client-facing *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
