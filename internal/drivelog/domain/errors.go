package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound           = errors.New("drive session not found")
	ErrForbidden          = errors.New("forbidden action")
	ErrSessionInProgress  = errors.New("a drive session is already in progress")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrUserNotFound       = errors.New("user not found")
)

// FieldError is a single recoverable validation failure scoped to one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field errors from a validate pass. It satisfies
// error so services can return it through the normal error path.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields renders the errors as a field -> message map for JSON responses.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}
