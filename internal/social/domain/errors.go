package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrFriendNotFound    = errors.New("friend user not found")
	ErrOtherUserNotFound = errors.New("other user not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrCommentNotInPost  = errors.New("comment does not belong to post")
	ErrInvalidPage       = errors.New("skip must be >= 0 and limit between 1 and 1000")
)

// ValidationError reports a required body property that is absent or blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s property is missing", e.Field)
}

// Required returns v as given, or a ValidationError naming field when v is
// nil or blank.
func Required(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", &ValidationError{Field: field}
	}
	return *v, nil
}
