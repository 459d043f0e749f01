package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// UniqueSuffix returns a short unique string for generating non-conflicting test data
// in the shared database.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueISBN13 returns a checksum-valid ISBN-13 that is unlikely to collide
// with other tests.
func UniqueISBN13() string {
	id := uuid.New()
	digits := make([]byte, 0, 13)
	digits = append(digits, '9', '7', '9')
	for _, b := range id[:9] {
		digits = append(digits, '0'+b%10)
	}
	sum := 0
	for i, c := range digits {
		w := 1
		if i%2 == 1 {
			w = 3
		}
		sum += int(c-'0') * w
	}
	digits = append(digits, '0'+byte((10-sum%10)%10))
	return string(digits)
}

// BookType returns a seeded book type by name.
func BookType(t *testing.T, pool *pgxpool.Pool, name string) domain.BookType {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`SELECT id FROM book_types WHERE name = $1`, name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: BookType %q: %v", name, err)
	}
	return domain.RestoreBookType(id, name)
}

// SeedAuthor inserts an author with a unique name.
func SeedAuthor(t *testing.T, pool *pgxpool.Pool) domain.Author {
	t.Helper()

	a, err := domain.NewAuthor("Author " + UniqueSuffix())
	if err != nil {
		t.Fatalf("testhelper: SeedAuthor: %v", err)
	}
	_, err = pool.Exec(context.Background(),
		`INSERT INTO authors (id, name) VALUES ($1, $2)`, a.ID(), a.Name())
	if err != nil {
		t.Fatalf("testhelper: SeedAuthor insert: %v", err)
	}
	return a
}

// SeedCategory inserts a category with a unique name.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()

	c, err := domain.NewCategory("category "+UniqueSuffix(), nil)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory: %v", err)
	}
	_, err = pool.Exec(context.Background(),
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID(), c.Name())
	if err != nil {
		t.Fatalf("testhelper: SeedCategory insert: %v", err)
	}
	return c
}

// CountRows returns the number of rows in table matching the where clause.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT count(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
