package service

import "errors"

// Authentication outcomes. Each maps to its own user-facing message.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrAccessDenied      = errors.New("access denied: account does not have annotator privileges")
)

var (
	ErrNoItemsRemaining   = errors.New("no items remaining")
	ErrItemNotFound       = errors.New("item not found")
	ErrAnnotationNotFound = errors.New("annotation not found")
	ErrInvalidScore       = errors.New("scores must be between 1 and 5")
)
