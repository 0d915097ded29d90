package author

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an author is not found.
var ErrNotFound = errors.New("author not found")

// ErrEmailTaken is returned when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Author is an identity that can own book records. Its ID is the opaque
// principal the registry stores as the owner.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
