package registry

import (
	"context"
	"sync"
	"time"
)

// RegisterInput carries the caller-supplied fields of a registration.
// RoyaltyPercent is signed on purpose: a negative value stays negative and is
// rejected by the bounds check instead of wrapping to a huge unsigned number.
type RegisterInput struct {
	Title          string
	ISBN           string
	ContentHash    []byte
	RoyaltyPercent int
}

// Service is the book registry state machine. All four operations go through
// it; the two mutating ones run under an exclusive critical section so no
// registration can observe another one half applied.
type Service struct {
	mu    sync.Mutex
	store Store
}

// NewService creates a registry service on top of a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register runs the validation pipeline and, on full success, inserts the
// record under the next dense id and returns it. Validation short-circuits at
// the first failure and no failure leaves any trace in the store: the counter
// and both uniqueness indexes only move inside CreateRecord.
func (s *Service) Register(ctx context.Context, in RegisterInput, caller string) (uint64, error) {
	if in.Title == "" {
		return 0, ErrInvalidTitle
	}
	if len(in.ISBN) < MinISBNLength {
		return 0, ErrInvalidISBN
	}
	if in.RoyaltyPercent < 0 || in.RoyaltyPercent > 100 {
		return 0, ErrInvalidRoyalty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Natural key before content hash: when both collide, the duplicate
	// listing error wins. Callers depend on that precedence.
	taken, err := s.store.NaturalKeyTaken(ctx, in.Title, in.ISBN)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrBookAlreadyExists
	}

	taken, err = s.store.ContentHashTaken(ctx, in.ContentHash)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrContentHashExists
	}

	id, err := s.store.NextID(ctx)
	if err != nil {
		return 0, err
	}

	rec := Record{
		ID:             id,
		Title:          in.Title,
		ISBN:           in.ISBN,
		ContentHash:    in.ContentHash,
		RoyaltyPercent: in.RoyaltyPercent,
		Owner:          caller,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return 0, err
	}
	return id, nil
}

// TransferOwnership hands the record over to newOwner. Only the current owner
// may do this; nothing besides the owner field changes.
func (s *Service) TransferOwnership(ctx context.Context, id uint64, newOwner, caller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if rec.Owner != caller {
		return ErrUnauthorized
	}
	return s.store.UpdateOwner(ctx, id, newOwner)
}

// GetDetails returns the record for id. A missing id is reported through the
// bool, never as an error.
func (s *Service) GetDetails(ctx context.Context, id uint64) (Record, bool, error) {
	return s.store.GetRecord(ctx, id)
}

// IsOwner reports whether a record exists for id and identity currently owns
// it. "No such record" and "someone else owns it" both come back false.
func (s *Service) IsOwner(ctx context.Context, id uint64, identity string) (bool, error) {
	rec, ok, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return false, err
	}
	return ok && rec.Owner == identity, nil
}
