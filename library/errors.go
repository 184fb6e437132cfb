package library

import "errors"

// Sentinel errors for the lending domain. All of them are recoverable:
// callers report the message and the menu loop continues.
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrUnavailable        = errors.New("no copies available")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStudentNotFound    = errors.New("student not found")
	ErrRegistryFull       = errors.New("student registry is full")
	ErrWeakPassword       = errors.New("password does not meet the strength policy")
	ErrLoanLimitReached   = errors.New("maximum number of issued books reached")
	ErrRecordNotFound     = errors.New("issued record not found")
	ErrAlreadyReturned    = errors.New("book already returned")
)
