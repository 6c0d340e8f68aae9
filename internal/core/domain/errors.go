package domain

import "errors"

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrUserExists is returned when a username is already registered.
	ErrUserExists = errors.New("user already exists")
)
