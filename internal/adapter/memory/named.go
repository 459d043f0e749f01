package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// findByNames returns rows keyed by name; absent names are skipped.
func findByNames(txn *memdb.Txn, table string, names []string) (map[string]*namedRow, error) {
	found := make(map[string]*namedRow, len(names))
	for _, n := range names {
		raw, err := txn.First(table, "name", n)
		if err != nil {
			return nil, fmt.Errorf("%s lookup %q: %w", table, n, err)
		}
		if raw != nil {
			found[n] = raw.(*namedRow)
		}
	}
	return found, nil
}

// findOrCreate resolves every name inside one write transaction, so no
// other writer can create the same name in between.
func findOrCreate(ctx context.Context, db *memdb.MemDB, table string, names []string,
	newRow func(name string) (*namedRow, error),
) ([]*namedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	txn := db.Txn(true)
	defer txn.Abort()

	found, err := findByNames(txn, table, names)
	if err != nil {
		return nil, err
	}

	out := make([]*namedRow, len(names))
	for i, n := range names {
		row, ok := found[n]
		if !ok {
			row, err = newRow(n)
			if err != nil {
				return nil, err
			}
			if err := txn.Insert(table, row); err != nil {
				return nil, fmt.Errorf("%s insert %q: %w", table, n, err)
			}
			found[n] = row
		}
		out[i] = row
	}

	txn.Commit()
	return out, nil
}

// ---------------------------------------------------------------------------
// Authors
// ---------------------------------------------------------------------------

// AuthorRepo stores authors by exact (trimmed) name.
type AuthorRepo struct {
	db *memdb.MemDB
}

func (r *AuthorRepo) FindByNames(ctx context.Context, names []string) ([]domain.Author, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	found, err := findByNames(txn, tableAuthors, normalizeAll(names, domain.NormalizeAuthorName))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Author, 0, len(found))
	for _, row := range found {
		out = append(out, toAuthor(row))
	}
	return out, nil
}

func (r *AuthorRepo) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Author, error) {
	rows, err := findOrCreate(ctx, r.db, tableAuthors, normalizeAll(names, domain.NormalizeAuthorName),
		func(name string) (*namedRow, error) {
			a, err := domain.NewAuthor(name)
			if err != nil {
				return nil, err
			}
			return &namedRow{ID: a.ID().String(), Name: a.Name(), CreatedAt: time.Now().UTC()}, nil
		})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Author, len(rows))
	for i, row := range rows {
		out[i] = toAuthor(row)
	}
	return out, nil
}

func toAuthor(row *namedRow) domain.Author {
	return domain.RestoreAuthor(uuid.MustParse(row.ID), row.Name)
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// CategoryRepo stores categories by lowercase name.
type CategoryRepo struct {
	db *memdb.MemDB
}

func (r *CategoryRepo) FindByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	found, err := findByNames(txn, tableCategories, normalizeAll(names, domain.NormalizeCategoryName))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(found))
	for _, row := range found {
		out = append(out, toCategory(row))
	}
	return out, nil
}

func (r *CategoryRepo) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Category, error) {
	rows, err := findOrCreate(ctx, r.db, tableCategories, normalizeAll(names, domain.NormalizeCategoryName),
		func(name string) (*namedRow, error) {
			c, err := domain.NewCategory(name, nil)
			if err != nil {
				return nil, err
			}
			return &namedRow{ID: c.ID().String(), Name: c.Name(), CreatedAt: time.Now().UTC()}, nil
		})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, len(rows))
	for i, row := range rows {
		out[i] = toCategory(row)
	}
	return out, nil
}

func toCategory(row *namedRow) domain.Category {
	return domain.RestoreCategory(uuid.MustParse(row.ID), row.Name, row.Description)
}

// ---------------------------------------------------------------------------
// Book types
// ---------------------------------------------------------------------------

// TypeRepo reads the seeded book types.
type TypeRepo struct {
	db *memdb.MemDB
}

// FindByName returns nil, nil when no type has the given name.
func (r *TypeRepo) FindByName(ctx context.Context, name string) (*domain.BookType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableBookTypes, "name", domain.NormalizeTypeName(name))
	if err != nil {
		return nil, fmt.Errorf("book type lookup: %w", err)
	}
	if raw == nil {
		return nil, nil
	}
	bt := toBookType(raw.(*namedRow))
	return &bt, nil
}

// List returns all types ordered by name.
func (r *TypeRepo) List(ctx context.Context) ([]domain.BookType, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	txn := r.db.Txn(false)
	defer txn.Abort()

	// The name index iterates in lexical order.
	it, err := txn.Get(tableBookTypes, "name")
	if err != nil {
		return nil, fmt.Errorf("book type list: %w", err)
	}
	var out []domain.BookType
	for obj := it.Next(); obj != nil; obj = it.Next() {
		out = append(out, toBookType(obj.(*namedRow)))
	}
	return out, nil
}

func toBookType(row *namedRow) domain.BookType {
	return domain.RestoreBookType(uuid.MustParse(row.ID), row.Name)
}

func normalizeAll(names []string, fn func(string) string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fn(n)
	}
	return out
}
