// Package author implements the Author repository using PostgreSQL.
// Author names are case-sensitive and unique.
package author

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// Repo provides author persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new author repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var table = postgres.NamedTable[domain.Author]{
	Entity:     "author",
	Table:      "authors",
	NameColumn: "name",
	Columns:    []string{"id", "name"},
	Scan: func(row pgx.Row) (domain.Author, error) {
		var id uuid.UUID
		var name string
		if err := row.Scan(&id, &name); err != nil {
			return domain.Author{}, err
		}
		return domain.RestoreAuthor(id, name), nil
	},
	Name:          domain.Author.Name,
	InsertColumns: []string{"id", "name", "created_at"},
	NewRow: func(name string) ([]any, error) {
		a, err := domain.NewAuthor(name)
		if err != nil {
			return nil, err
		}
		return []any{a.ID(), a.Name(), time.Now().UTC()}, nil
	},
}

// FindByNames returns the authors with exactly the given names (after
// trimming). Unknown names are skipped; order is not guaranteed.
func (r *Repo) FindByNames(ctx context.Context, names []string) ([]domain.Author, error) {
	found, err := postgres.FindByNames(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, normalize(names))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Author, 0, len(found))
	for _, a := range found {
		out = append(out, a)
	}
	return out, nil
}

// FindOrCreateMany resolves each name to an author, creating missing ones.
// The result is in input order; repeated names map to the same author.
func (r *Repo) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Author, error) {
	return postgres.FindOrCreateMany(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, normalize(names))
}

func normalize(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = domain.NormalizeAuthorName(n)
	}
	return out
}
