package registry

import (
	"errors"
	"time"
)

// MinISBNLength is the shortest identifying code the registry accepts.
const MinISBNLength = 13

var (
	// ErrInvalidTitle is returned when the title is empty.
	ErrInvalidTitle = errors.New("title must not be empty")
	// ErrInvalidISBN is returned when the isbn is below the minimum length.
	ErrInvalidISBN = errors.New("isbn must be at least 13 characters")
	// ErrInvalidRoyalty is returned when the royalty percent is outside [0,100].
	ErrInvalidRoyalty = errors.New("royalty percent must be between 0 and 100")
	// ErrBookAlreadyExists is returned when the (title, isbn) pair is already registered.
	ErrBookAlreadyExists = errors.New("book already registered")
	// ErrContentHashExists is returned when the content fingerprint is already registered.
	ErrContentHashExists = errors.New("content hash already registered")
	// ErrUnauthorized is returned when the caller does not own the record it tries to change.
	ErrUnauthorized = errors.New("caller is not the book owner")
	// ErrNotFound is returned when no record exists for the given id.
	ErrNotFound = errors.New("book not found")
)

// Record is a registered book. Ids are dense and assigned in registration
// order starting at 1. Owner is the only field that ever changes after
// creation; everything else is written once by Register.
type Record struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	ISBN           string    `json:"isbn"`
	ContentHash    []byte    `json:"content_hash"`
	RoyaltyPercent int       `json:"royalty_percent"`
	Owner          string    `json:"owner"`
	CreatedAt      time.Time `json:"created_at"`
}
