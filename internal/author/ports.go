package author

import (
	"context"
)

// Repository defines the contract for author account storage. The registry
// relies on Exists to validate transfer targets; everything else serves
// signup and login.
type Repository interface {
	Create(ctx context.Context, a *Author) error
	GetByEmail(ctx context.Context, email string) (Author, error)
	GetByID(ctx context.Context, id string) (Author, error)
	Exists(ctx context.Context, id string) (bool, error)
}
