package registry

// Store implementation (Postgres)

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// PostgresStore persists the registry in postgres. The books table carries
// both uniqueness constraints and the registry_counter table holds next_id,
// so a registration is a single transaction.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a store on top of a pgx pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) NextID(ctx context.Context) (uint64, error) {
	var id uint64
	err := s.db.QueryRow(ctx, `SELECT next_id FROM registry_counter`).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PostgresStore) CreateRecord(ctx context.Context, rec Record) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
	INSERT INTO books (id, title, isbn, content_hash, royalty_percent, owner_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, rec.Title, rec.ISBN, rec.ContentHash, rec.RoyaltyPercent, rec.Owner, rec.CreatedAt)
	if err != nil {
		return translateConstraint(err)
	}

	if _, err := tx.Exec(ctx, `UPDATE registry_counter SET next_id = next_id + 1`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) GetRecord(ctx context.Context, id uint64) (Record, bool, error) {
	var rec Record
	err := s.db.QueryRow(ctx, `
	SELECT id, title, isbn, content_hash, royalty_percent, owner_id, created_at
	FROM books
	WHERE id = $1
	`, id).Scan(&rec.ID, &rec.Title, &rec.ISBN, &rec.ContentHash, &rec.RoyaltyPercent, &rec.Owner, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *PostgresStore) NaturalKeyTaken(ctx context.Context, title, isbn string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND isbn = $2)
	`, title, isbn).Scan(&taken)
	return taken, err
}

func (s *PostgresStore) ContentHashTaken(ctx context.Context, hash []byte) (bool, error) {
	var taken bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM books WHERE content_hash = $1)
	`, hash).Scan(&taken)
	return taken, err
}

func (s *PostgresStore) UpdateOwner(ctx context.Context, id uint64, owner string) error {
	tag, err := s.db.Exec(ctx, `UPDATE books SET owner_id = $2 WHERE id = $1`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// translateConstraint maps unique-violation errors onto the registry's own
// taxonomy so the service never leaks a driver error for a duplicate. The
// service checks both indexes before inserting, but the database constraints
// are the backstop when several api instances share one database.
func translateConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "books_title_isbn_key":
			return ErrBookAlreadyExists
		case "books_content_hash_key":
			return ErrContentHashExists
		}
	}
	return err
}
