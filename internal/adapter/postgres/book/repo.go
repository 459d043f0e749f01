// Package book implements the Book repository using PostgreSQL.
// A book is stored as one row in books plus ordered junction rows in
// book_authors and book_categories. Writes run in a single transaction.
package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

const isbnConstraint = "books_isbn_key"

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new book repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, tx: postgres.NewTxManager(pool)}
}

// ---------------------------------------------------------------------------
// Duplicate detection
// ---------------------------------------------------------------------------

// CheckDuplicate reports whether another book already uses q.ISBN.
// A zero ISBN never matches.
func (r *Repo) CheckDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.DuplicateResult, error) {
	if q.ISBN.IsZero() {
		return domain.DuplicateResult{}, nil
	}

	sb := postgres.Builder().
		Select("id").
		From("books").
		Where(squirrel.Eq{"isbn": q.ISBN.String()}).
		Limit(1)
	if q.ExcludeID != uuid.Nil {
		sb = sb.Where(squirrel.NotEq{"id": q.ExcludeID})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return domain.DuplicateResult{}, fmt.Errorf("build duplicate query: %w", err)
	}

	var existing uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&existing)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DuplicateResult{}, nil
	}
	if err != nil {
		return domain.DuplicateResult{}, postgres.MapError(err, "book", "isbn "+q.ISBN.String())
	}

	return domain.DuplicateResult{
		IsDuplicate:   true,
		DuplicateType: domain.DuplicateTypeISBN,
		ExistingID:    existing,
	}, nil
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Save inserts the book row, its junction rows and the embedding in one
// transaction. A concurrent insert of the same ISBN fails with
// *domain.DuplicateISBNError and leaves nothing behind.
func (r *Repo) Save(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error) {
	b := p.Book

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		vector, model := embeddingColumns(p.Embedding)
		query, args, err := postgres.Builder().
			Insert("books").
			Columns("id", "title", "type_id", "format", "isbn", "description",
				"available", "path", "embedding", "embedding_model", "created_at", "updated_at").
			Values(b.ID(), b.Title(), b.Type().ID(), b.Format().String(), isbnColumn(b),
				b.Description(), b.Available(), b.Path(), vector, model, b.CreatedAt(), b.UpdatedAt()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build book insert: %w", err)
		}

		if _, err := q.Exec(ctx, query, args...); err != nil {
			return r.mapWriteError(err, b)
		}

		return insertRelations(ctx, q, b)
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Update rewrites the book row and replaces its junction rows. A zero
// p.Embedding keeps the stored vector.
func (r *Repo) Update(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error) {
	b := p.Book

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		ub := postgres.Builder().
			Update("books").
			Set("title", b.Title()).
			Set("type_id", b.Type().ID()).
			Set("format", b.Format().String()).
			Set("isbn", isbnColumn(b)).
			Set("description", b.Description()).
			Set("available", b.Available()).
			Set("path", b.Path()).
			Set("updated_at", b.UpdatedAt()).
			Where(squirrel.Eq{"id": b.ID()})
		if !p.Embedding.IsZero() {
			vector, model := embeddingColumns(p.Embedding)
			ub = ub.Set("embedding", vector).Set("embedding_model", model)
		}

		query, args, err := ub.ToSql()
		if err != nil {
			return fmt.Errorf("build book update: %w", err)
		}

		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return r.mapWriteError(err, b)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("book %s: %w", b.ID(), domain.ErrNotFound)
		}

		batch := &pgx.Batch{}
		batch.Queue(`DELETE FROM book_authors WHERE book_id = $1`, b.ID())
		batch.Queue(`DELETE FROM book_categories WHERE book_id = $1`, b.ID())
		if err := q.SendBatch(ctx, batch).Close(); err != nil {
			return postgres.MapError(err, "book relations", b.ID().String())
		}

		return insertRelations(ctx, q, b)
	})
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// Delete removes a book. Junction rows go with it via ON DELETE CASCADE;
// authors and categories are kept.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "book", id.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func insertRelations(ctx context.Context, q postgres.Querier, b domain.Book) error {
	batch := &pgx.Batch{}
	for i, a := range b.Authors() {
		batch.Queue(`INSERT INTO book_authors (book_id, author_id, position) VALUES ($1, $2, $3)`,
			b.ID(), a.ID(), i)
	}
	for i, c := range b.Categories() {
		batch.Queue(`INSERT INTO book_categories (book_id, category_id, position) VALUES ($1, $2, $3)`,
			b.ID(), c.ID(), i)
	}

	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return postgres.MapError(err, "book relations", b.ID().String())
	}
	return nil
}

func (r *Repo) mapWriteError(err error, b domain.Book) error {
	if postgres.IsUniqueViolation(err, isbnConstraint) {
		isbn := ""
		if v := b.ISBN(); v != nil {
			isbn = v.String()
		}
		return &domain.DuplicateISBNError{ISBN: isbn}
	}
	return postgres.MapError(err, "book", b.ID().String())
}

func isbnColumn(b domain.Book) *string {
	v := b.ISBN()
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func embeddingColumns(e domain.Embedding) ([]float32, *string) {
	if e.IsZero() {
		return nil, nil
	}
	model := e.Model
	return e.Vector, &model
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns a book with its type, authors and categories in stored order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := postgres.Builder().
		Select("b.id", "b.title", "t.id", "t.name", "b.format", "b.isbn", "b.description",
			"b.available", "b.path", "b.created_at", "b.updated_at").
		From("books b").
		Join("book_types t ON t.id = b.type_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build book select: %w", err)
	}

	var (
		rec       domain.BookRecord
		typeID    uuid.UUID
		typeName  string
		format    string
		isbn      *string
		createdAt time.Time
		updatedAt time.Time
	)
	err = q.QueryRow(ctx, query, args...).Scan(
		&rec.ID, &rec.Title, &typeID, &typeName, &format, &isbn, &rec.Description,
		&rec.Available, &rec.Path, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "book", id.String())
	}

	rec.Type = domain.RestoreBookType(typeID, typeName)
	rec.Format = domain.Format(format)
	if isbn != nil {
		v := domain.RestoreISBN(*isbn)
		rec.ISBN = &v
	}
	rec.CreatedAt = createdAt.UTC()
	rec.UpdatedAt = updatedAt.UTC()

	if rec.Authors, err = r.authorsOf(ctx, q, id); err != nil {
		return nil, err
	}
	if rec.Categories, err = r.categoriesOf(ctx, q, id); err != nil {
		return nil, err
	}

	b := domain.RestoreBook(rec)
	return &b, nil
}

// GetEmbedding returns the stored embedding of a book; zero when none was saved.
func (r *Repo) GetEmbedding(ctx context.Context, id uuid.UUID) (domain.Embedding, error) {
	var (
		vector []float32
		model  *string
	)
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx,
		`SELECT embedding, embedding_model FROM books WHERE id = $1`, id,
	).Scan(&vector, &model)
	if err != nil {
		return domain.Embedding{}, postgres.MapError(err, "book", id.String())
	}

	e := domain.Embedding{Vector: vector}
	if model != nil {
		e.Model = *model
	}
	return e, nil
}

func (r *Repo) authorsOf(ctx context.Context, q postgres.Querier, bookID uuid.UUID) ([]domain.Author, error) {
	rows, err := q.Query(ctx, `
		SELECT a.id, a.name
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = $1
		ORDER BY ba.position`, bookID)
	if err != nil {
		return nil, postgres.MapError(err, "book authors", bookID.String())
	}

	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Author, error) {
		var id uuid.UUID
		var name string
		err := row.Scan(&id, &name)
		return domain.RestoreAuthor(id, name), err
	})
	if err != nil {
		return nil, postgres.MapError(err, "book authors", bookID.String())
	}
	return authors, nil
}

func (r *Repo) categoriesOf(ctx context.Context, q postgres.Querier, bookID uuid.UUID) ([]domain.Category, error) {
	rows, err := q.Query(ctx, `
		SELECT c.id, c.name, c.description
		FROM book_categories bc
		JOIN categories c ON c.id = bc.category_id
		WHERE bc.book_id = $1
		ORDER BY bc.position`, bookID)
	if err != nil {
		return nil, postgres.MapError(err, "book categories", bookID.String())
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		var (
			id          uuid.UUID
			name        string
			description *string
		)
		err := row.Scan(&id, &name, &description)
		return domain.RestoreCategory(id, name, description), err
	})
	if err != nil {
		return nil, postgres.MapError(err, "book categories", bookID.String())
	}
	return categories, nil
}
