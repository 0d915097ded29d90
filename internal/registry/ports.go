package registry

import (
	"context"
)

// Store defines the contract for registry persistence. Implementations keep
// the record map, both uniqueness indexes, and the id counter consistent with
// each other; the Service is responsible for cross-call atomicity.
type Store interface {
	// NextID returns the id the next successful registration will claim.
	NextID(ctx context.Context) (uint64, error)
	// CreateRecord writes the record, both uniqueness index entries, and the
	// advanced counter in a single atomic step. A failed create leaves all
	// of them untouched.
	CreateRecord(ctx context.Context, rec Record) error
	// GetRecord looks up a record by id. The bool reports presence; a missing
	// id is not an error.
	GetRecord(ctx context.Context, id uint64) (Record, bool, error)
	// NaturalKeyTaken reports whether the (title, isbn) pair is already claimed.
	NaturalKeyTaken(ctx context.Context, title, isbn string) (bool, error)
	// ContentHashTaken reports whether the content fingerprint is already claimed.
	ContentHashTaken(ctx context.Context, hash []byte) (bool, error)
	// UpdateOwner rewrites the owner of an existing record.
	UpdateOwner(ctx context.Context, id uint64, owner string) error
}
