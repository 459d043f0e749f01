package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// BookRepo stores books with references to authors, categories and types.
type BookRepo struct {
	db *memdb.MemDB
}

func (r *BookRepo) CheckDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.DuplicateResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.DuplicateResult{}, err
	}
	if q.ISBN.IsZero() {
		return domain.DuplicateResult{}, nil
	}

	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableBooks, "isbn", q.ISBN.String())
	if err != nil {
		return domain.DuplicateResult{}, fmt.Errorf("book isbn lookup: %w", err)
	}
	if raw == nil {
		return domain.DuplicateResult{}, nil
	}

	id := uuid.MustParse(raw.(*bookRow).ID)
	if id == q.ExcludeID {
		return domain.DuplicateResult{}, nil
	}
	return domain.DuplicateResult{
		IsDuplicate:   true,
		DuplicateType: domain.DuplicateTypeISBN,
		ExistingID:    id,
	}, nil
}

// Save stores the book and its embedding in one write transaction.
func (r *BookRepo) Save(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	b := p.Book
	raw, err := txn.First(tableBooks, "id", b.ID().String())
	if err != nil {
		return nil, fmt.Errorf("book lookup: %w", err)
	}
	if raw != nil {
		return nil, fmt.Errorf("book %s: %w", b.ID(), domain.ErrAlreadyExists)
	}

	row := toBookRow(b)
	if err := checkISBNFree(txn, row); err != nil {
		return nil, err
	}
	if err := checkReferences(txn, row); err != nil {
		return nil, err
	}
	row.Embedding = slices.Clone(p.Embedding.Vector)
	row.EmbeddingModel = p.Embedding.Model

	if err := txn.Insert(tableBooks, row); err != nil {
		return nil, fmt.Errorf("book insert: %w", err)
	}
	txn.Commit()
	return &b, nil
}

// Update replaces the stored book. A zero p.Embedding keeps the stored vector.
func (r *BookRepo) Update(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	b := p.Book
	raw, err := txn.First(tableBooks, "id", b.ID().String())
	if err != nil {
		return nil, fmt.Errorf("book lookup: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("book %s: %w", b.ID(), domain.ErrNotFound)
	}
	old := raw.(*bookRow)

	row := toBookRow(b)
	if err := checkISBNFree(txn, row); err != nil {
		return nil, err
	}
	if err := checkReferences(txn, row); err != nil {
		return nil, err
	}
	if p.Embedding.IsZero() {
		row.Embedding, row.EmbeddingModel = old.Embedding, old.EmbeddingModel
	} else {
		row.Embedding, row.EmbeddingModel = slices.Clone(p.Embedding.Vector), p.Embedding.Model
	}

	// Delete first so a cleared ISBN leaves the index.
	if err := txn.Delete(tableBooks, old); err != nil {
		return nil, fmt.Errorf("book replace: %w", err)
	}
	if err := txn.Insert(tableBooks, row); err != nil {
		return nil, fmt.Errorf("book replace: %w", err)
	}
	txn.Commit()
	return &b, nil
}

func (r *BookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableBooks, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("book lookup: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return restoreBook(txn, raw.(*bookRow))
}

// GetEmbedding returns the stored embedding; zero when none was saved.
func (r *BookRepo) GetEmbedding(ctx context.Context, id uuid.UUID) (domain.Embedding, error) {
	if err := ctx.Err(); err != nil {
		return domain.Embedding{}, err
	}

	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableBooks, "id", id.String())
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("book lookup: %w", err)
	}
	if raw == nil {
		return domain.Embedding{}, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	row := raw.(*bookRow)
	return domain.Embedding{Vector: slices.Clone(row.Embedding), Model: row.EmbeddingModel}, nil
}

func (r *BookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	txn := r.db.Txn(true)
	defer txn.Abort()

	n, err := txn.DeleteAll(tableBooks, "id", id.String())
	if err != nil {
		return fmt.Errorf("book delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	txn.Commit()
	return nil
}

// memdb does not enforce unique indexes, so the ISBN is checked by hand.
func checkISBNFree(txn *memdb.Txn, row *bookRow) error {
	if row.ISBN == "" {
		return nil
	}
	raw, err := txn.First(tableBooks, "isbn", row.ISBN)
	if err != nil {
		return fmt.Errorf("book isbn lookup: %w", err)
	}
	if raw != nil && raw.(*bookRow).ID != row.ID {
		return &domain.DuplicateISBNError{ISBN: row.ISBN}
	}
	return nil
}

func checkReferences(txn *memdb.Txn, row *bookRow) error {
	check := func(table, id string) error {
		raw, err := txn.First(table, "id", id)
		if err != nil {
			return fmt.Errorf("%s lookup: %w", table, err)
		}
		if raw == nil {
			return fmt.Errorf("%s %s: %w", table, id, domain.ErrNotFound)
		}
		return nil
	}

	if err := check(tableBookTypes, row.TypeID); err != nil {
		return err
	}
	for _, id := range row.AuthorIDs {
		if err := check(tableAuthors, id); err != nil {
			return err
		}
	}
	for _, id := range row.CategoryIDs {
		if err := check(tableCategories, id); err != nil {
			return err
		}
	}
	return nil
}

func toBookRow(b domain.Book) *bookRow {
	row := &bookRow{
		ID:          b.ID().String(),
		Title:       b.Title(),
		TypeID:      b.Type().ID().String(),
		Format:      b.Format().String(),
		Description: b.Description(),
		Available:   b.Available(),
		Path:        b.Path(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
	if isbn := b.ISBN(); isbn != nil {
		row.ISBN = isbn.String()
	}
	for _, a := range b.Authors() {
		row.AuthorIDs = append(row.AuthorIDs, a.ID().String())
	}
	for _, c := range b.Categories() {
		row.CategoryIDs = append(row.CategoryIDs, c.ID().String())
	}
	return row
}

func restoreBook(txn *memdb.Txn, row *bookRow) (*domain.Book, error) {
	rec := domain.BookRecord{
		ID:          uuid.MustParse(row.ID),
		Title:       row.Title,
		Format:      domain.Format(row.Format),
		Description: row.Description,
		Available:   row.Available,
		Path:        row.Path,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.ISBN != "" {
		isbn := domain.RestoreISBN(row.ISBN)
		rec.ISBN = &isbn
	}

	raw, err := txn.First(tableBookTypes, "id", row.TypeID)
	if err != nil || raw == nil {
		return nil, fmt.Errorf("book %s type %s: %w", row.ID, row.TypeID, domain.ErrNotFound)
	}
	rec.Type = toBookType(raw.(*namedRow))

	for _, id := range row.AuthorIDs {
		raw, err := txn.First(tableAuthors, "id", id)
		if err != nil || raw == nil {
			return nil, fmt.Errorf("book %s author %s: %w", row.ID, id, domain.ErrNotFound)
		}
		rec.Authors = append(rec.Authors, toAuthor(raw.(*namedRow)))
	}
	for _, id := range row.CategoryIDs {
		raw, err := txn.First(tableCategories, "id", id)
		if err != nil || raw == nil {
			return nil, fmt.Errorf("book %s category %s: %w", row.ID, id, domain.ErrNotFound)
		}
		rec.Categories = append(rec.Categories, toCategory(raw.(*namedRow)))
	}

	b := domain.RestoreBook(rec)
	return &b, nil
}
