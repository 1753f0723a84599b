package repository

import "errors"

var (
	// Common errors
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	// API key errors
	ErrKeyNotFound = errors.New("api key not found")
	ErrKeyExists   = errors.New("api key already exists")
)
