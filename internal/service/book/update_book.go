package book

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// UpdateBook applies a partial update. Only provided relations are resolved,
// and the embedding is regenerated only when text it is built from changes.
func (s *Service) UpdateBook(ctx context.Context, input UpdateBookInput) (*BookOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	current, err := s.books.GetByID(ctx, input.ID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}

	upd := domain.BookUpdate{
		Title:       input.Title,
		Format:      input.Format,
		ISBN:        input.ISBN,
		Description: input.Description,
		Available:   input.Available,
		Path:        input.Path,
	}

	if input.Type != nil {
		bt, err := s.resolveType(ctx, *input.Type)
		if err != nil {
			return nil, err
		}
		upd.Type = &bt
	}

	isbn, err := parseOptionalISBN(input.ISBN)
	if err != nil {
		return nil, err
	}
	if isbn != nil && (current.ISBN() == nil || !current.ISBN().Equal(*isbn)) {
		q := domain.DuplicateQuery{ISBN: *isbn, ExcludeID: current.ID()}
		if err := s.ensureUniqueISBN(ctx, q); err != nil {
			return nil, err
		}
	}

	if input.CategoryNames != nil {
		upd.Categories, err = s.categories.FindOrCreateMany(ctx, input.CategoryNames)
		if err != nil {
			return nil, fmt.Errorf("resolve categories: %w", err)
		}
	}
	if input.Authors != nil {
		upd.Authors, err = s.authors.FindOrCreateMany(ctx, input.Authors)
		if err != nil {
			return nil, fmt.Errorf("resolve authors: %w", err)
		}
	}

	next, err := current.Update(upd)
	if err != nil {
		return nil, err
	}

	var emb domain.Embedding
	if embeddingText(next) != embeddingText(*current) {
		emb, err = s.embed(ctx, next)
		if err != nil {
			return nil, err
		}
	}

	saved, err := s.books.Update(ctx, domain.SaveBookParams{Book: next, Embedding: emb})
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	s.log.InfoContext(ctx, "book updated",
		requestAttr(ctx),
		slog.String("book_id", saved.ID().String()),
		slog.Bool("reembedded", !emb.IsZero()),
	)

	return toOutput(saved), nil
}
