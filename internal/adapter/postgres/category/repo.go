// Package category implements the Category repository using PostgreSQL.
// Names are stored lowercase; lookups are case-insensitive.
package category

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var table = postgres.NamedTable[domain.Category]{
	Entity:     "category",
	Table:      "categories",
	NameColumn: "name",
	Columns:    []string{"id", "name", "description"},
	Scan: func(row pgx.Row) (domain.Category, error) {
		var (
			id          uuid.UUID
			name        string
			description *string
		)
		if err := row.Scan(&id, &name, &description); err != nil {
			return domain.Category{}, err
		}
		return domain.RestoreCategory(id, name, description), nil
	},
	Name:          domain.Category.Name,
	InsertColumns: []string{"id", "name", "created_at"},
	NewRow: func(name string) ([]any, error) {
		c, err := domain.NewCategory(name, nil)
		if err != nil {
			return nil, err
		}
		return []any{c.ID(), c.Name(), time.Now().UTC()}, nil
	},
}

// FindByNames returns the categories matching the given names case-insensitively.
// Unknown names are skipped; order is not guaranteed.
func (r *Repo) FindByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	found, err := postgres.FindByNames(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, normalize(names))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(found))
	for _, c := range found {
		out = append(out, c)
	}
	return out, nil
}

// FindOrCreateMany resolves each name to a category, creating missing ones.
// "Fiction" and "FICTION" resolve to the same category.
func (r *Repo) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Category, error) {
	return postgres.FindOrCreateMany(ctx, postgres.QuerierFromCtx(ctx, r.pool), table, normalize(names))
}

func normalize(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = domain.NormalizeCategoryName(n)
	}
	return out
}
