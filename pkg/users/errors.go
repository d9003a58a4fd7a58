package users

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is a category of a users error
type Kind string

const (
	// KindBadRequest - request did not pass validation
	KindBadRequest Kind = "BadRequest"

	// KindConflict - login is already taken
	KindConflict Kind = "Conflict"

	// KindNotFound - no user with given login
	KindNotFound Kind = "NotFound"

	// KindUnauthorized - credentials do not match
	KindUnauthorized Kind = "Unauthorized"
)

// Error is returned by users operations
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns kind of the users error or empty string
func KindOf(err error) Kind {
	if usersErr, ok := errors.Cause(err).(*Error); ok {
		return usersErr.Kind
	}
	return ""
}
