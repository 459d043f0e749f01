package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// NamedTable describes a table whose rows are identified by a unique name column.
type NamedTable[T any] struct {
	// Entity names the row kind in error messages.
	Entity     string
	Table      string
	NameColumn string
	// Columns are selected and passed to Scan in this order.
	Columns []string
	Scan    func(row pgx.Row) (T, error)
	Name    func(T) string

	InsertColumns []string
	// NewRow returns InsertColumns values for a new row named name.
	NewRow func(name string) ([]any, error)
}

// FindByNames returns the rows matching any of the given (already normalized)
// names, keyed by name. Names without a row are absent from the map.
func FindByNames[T any](ctx context.Context, q Querier, t NamedTable[T], names []string) (map[string]T, error) {
	found := make(map[string]T, len(names))
	if len(names) == 0 {
		return found, nil
	}

	query, args, err := Builder().
		Select(t.Columns...).
		From(t.Table).
		Where(squirrel.Eq{t.NameColumn: names}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s select: %w", t.Entity, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, MapError(err, t.Entity, "by names")
	}
	defer rows.Close()

	for rows.Next() {
		v, err := t.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Entity, err)
		}
		found[t.Name(v)] = v
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, t.Entity, "by names")
	}

	return found, nil
}

// FindOrCreateMany resolves every name to a row, inserting the missing ones.
//
// Missing rows are inserted with ON CONFLICT DO NOTHING so a concurrent writer
// creating the same name is not an error, then the full name list is read
// again to pick up rows created by either side. The result has one element
// per input name, in input order. A name that is still unresolved after the
// re-read fails with domain.ErrUnresolvedName.
func FindOrCreateMany[T any](ctx context.Context, q Querier, t NamedTable[T], names []string) ([]T, error) {
	if len(names) == 0 {
		return nil, nil
	}

	unique := uniqueNames(names)

	found, err := FindByNames(ctx, q, t, unique)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, n := range unique {
		if _, ok := found[n]; !ok {
			missing = append(missing, n)
		}
	}

	if len(missing) > 0 {
		// Sorted so concurrent inserts take row locks in the same order.
		slices.Sort(missing)
		if err := insertNames(ctx, q, t, missing); err != nil {
			return nil, err
		}

		found, err = FindByNames(ctx, q, t, unique)
		if err != nil {
			return nil, err
		}
	}

	out := make([]T, len(names))
	for i, n := range names {
		v, ok := found[n]
		if !ok {
			return nil, fmt.Errorf("%s %q: %w", t.Entity, n, domain.ErrUnresolvedName)
		}
		out[i] = v
	}
	return out, nil
}

func insertNames[T any](ctx context.Context, q Querier, t NamedTable[T], names []string) error {
	insert := Builder().
		Insert(t.Table).
		Columns(t.InsertColumns...).
		Suffix("ON CONFLICT (" + t.NameColumn + ") DO NOTHING")

	for _, n := range names {
		values, err := t.NewRow(n)
		if err != nil {
			return err
		}
		insert = insert.Values(values...)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build %s insert: %w", t.Entity, err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return MapError(err, t.Entity, "bulk insert")
	}
	return nil
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
