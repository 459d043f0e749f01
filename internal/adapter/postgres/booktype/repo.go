// Package booktype implements read access to the seeded book types.
package booktype

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// Repo provides book type lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new book type repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// FindByName returns the type with the given name, or nil, nil when absent.
func (r *Repo) FindByName(ctx context.Context, name string) (*domain.BookType, error) {
	name = domain.NormalizeTypeName(name)

	query, args, err := postgres.Builder().
		Select("id", "name").
		From("book_types").
		Where("name = ?", name).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book type select: %w", err)
	}

	var id uuid.UUID
	var stored string
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id, &stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "book type", name)
	}

	bt := domain.RestoreBookType(id, stored)
	return &bt, nil
}

// List returns every book type ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.BookType, error) {
	query, args, err := postgres.Builder().
		Select("id", "name").
		From("book_types").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book type list: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "book type", "list")
	}

	types, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BookType, error) {
		var id uuid.UUID
		var name string
		err := row.Scan(&id, &name)
		return domain.RestoreBookType(id, name), err
	})
	if err != nil {
		return nil, postgres.MapError(err, "book type", "list")
	}
	return types, nil
}
