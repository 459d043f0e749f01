// Package memory implements the catalog repositories on go-memdb.
// It backs the CLI dry-run mode and end-to-end service tests. memdb allows a
// single write transaction at a time, which makes find-or-create atomic.
package memory

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

const (
	tableBookTypes  = "book_type"
	tableAuthors    = "author"
	tableCategories = "category"
	tableBooks      = "book"
)

func schema() *memdb.DBSchema {
	byName := func(table string) *memdb.TableSchema {
		return &memdb.TableSchema{
			Name: table,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				"name": {
					Name:    "name",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
			},
		}
	}

	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableBookTypes:  byName(tableBookTypes),
			tableAuthors:    byName(tableAuthors),
			tableCategories: byName(tableCategories),
			tableBooks: {
				Name: tableBooks,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"isbn": {
						Name:         "isbn",
						Unique:       true,
						AllowMissing: true,
						Indexer:      &memdb.StringFieldIndex{Field: "ISBN"},
					},
				},
			},
		},
	}
}

// Store holds every in-memory table.
type Store struct {
	db *memdb.MemDB
}

// NewStore creates an empty store seeded with the given book type names.
func NewStore(typeNames ...string) (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("init in-memory database: %w", err)
	}

	txn := db.Txn(true)
	defer txn.Abort()
	for _, name := range typeNames {
		bt, err := domain.NewBookType(name)
		if err != nil {
			return nil, fmt.Errorf("seed book type %q: %w", name, err)
		}
		if err := txn.Insert(tableBookTypes, &namedRow{ID: bt.ID().String(), Name: bt.Name()}); err != nil {
			return nil, fmt.Errorf("seed book type %q: %w", name, err)
		}
	}
	txn.Commit()

	return &Store{db: db}, nil
}

// NewDefaultStore creates a store seeded with domain.DefaultBookTypeNames.
func NewDefaultStore() (*Store, error) {
	return NewStore(domain.DefaultBookTypeNames...)
}

// Types returns the book type repository.
func (s *Store) Types() *TypeRepo { return &TypeRepo{db: s.db} }

// Authors returns the author repository.
func (s *Store) Authors() *AuthorRepo { return &AuthorRepo{db: s.db} }

// Categories returns the category repository.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{db: s.db} }

// Books returns the book repository.
func (s *Store) Books() *BookRepo { return &BookRepo{db: s.db} }

// Counts reports the number of stored authors, categories and books.
func (s *Store) Counts() (authors, categories, books int) {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return count(txn, tableAuthors), count(txn, tableCategories), count(txn, tableBooks)
}

func count(txn *memdb.Txn, table string) int {
	it, err := txn.Get(table, "id")
	if err != nil {
		return 0
	}
	n := 0
	for obj := it.Next(); obj != nil; obj = it.Next() {
		n++
	}
	return n
}

type namedRow struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
}

type bookRow struct {
	ID             string
	Title          string
	TypeID         string
	AuthorIDs      []string
	CategoryIDs    []string
	Format         string
	ISBN           string
	Description    string
	Available      bool
	Path           *string
	Embedding      []float32
	EmbeddingModel string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
