package models

import "errors"

// Errors translated from storage constraint violations.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUnknownUser       = errors.New("user does not exist")
)
