package author

// Repository implementation (Postgres)

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Create(ctx context.Context, a *Author) error {
	err := r.db.QueryRow(ctx, `
	INSERT INTO authors (id, name, email, password_hash)
	VALUES (gen_random_uuid(), $1, $2, $3)
	RETURNING id, created_at
	`, a.Name, a.Email, a.Password).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresRepo) GetByEmail(ctx context.Context, email string) (Author, error) {
	var a Author
	err := r.db.QueryRow(ctx, `
	SELECT id, name, email, password_hash, created_at
	FROM authors
	WHERE email = $1
	`, email).Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, ErrNotFound
	}
	if err != nil {
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Author, error) {
	var a Author
	err := r.db.QueryRow(ctx, `
	SELECT id, name, email, password_hash, created_at
	FROM authors
	WHERE id = $1
	`, id).Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Author{}, ErrNotFound
	}
	if err != nil {
		return Author{}, err
	}
	return a, nil
}

func (r *PostgresRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}
