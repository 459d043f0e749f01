package book

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// CreateBook validates the input, rejects duplicate ISBNs, resolves or
// creates categories and authors, embeds the book text and saves everything
// in one atomic operation. Every failure is returned unchanged in kind.
func (s *Service) CreateBook(ctx context.Context, input CreateBookInput) (*BookOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	isbn, err := parseOptionalISBN(input.ISBN)
	if err != nil {
		return nil, err
	}

	bookType, err := s.resolveType(ctx, input.Type)
	if err != nil {
		return nil, err
	}

	// Before any author or category row exists.
	if isbn != nil {
		if err := s.ensureUniqueISBN(ctx, domain.DuplicateQuery{ISBN: *isbn}); err != nil {
			return nil, err
		}
	}

	categories, err := s.categories.FindOrCreateMany(ctx, input.CategoryNames)
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}

	authors, err := s.authors.FindOrCreateMany(ctx, input.Authors)
	if err != nil {
		return nil, fmt.Errorf("resolve authors: %w", err)
	}

	available := false
	if input.Available != nil {
		available = *input.Available
	}

	book, err := domain.NewBook(domain.NewBookParams{
		Title:       input.Title,
		Authors:     authors,
		Type:        bookType,
		Categories:  categories,
		Format:      input.Format,
		ISBN:        input.ISBN,
		Description: input.Description,
		Available:   available,
		Path:        input.Path,
	})
	if err != nil {
		return nil, err
	}

	emb, err := s.embed(ctx, book)
	if err != nil {
		return nil, err
	}

	saved, err := s.books.Save(ctx, domain.SaveBookParams{Book: book, Embedding: emb})
	if err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}

	s.log.InfoContext(ctx, "book created",
		requestAttr(ctx),
		slog.String("book_id", saved.ID().String()),
		slog.String("title", saved.Title()),
		slog.Int("authors", len(authors)),
		slog.Int("categories", len(categories)),
	)

	return toOutput(saved), nil
}

func parseOptionalISBN(raw *string) (*domain.ISBN, error) {
	if trimOrNil(raw) == nil {
		return nil, nil
	}
	isbn, err := domain.NewISBN(*raw)
	if err != nil {
		return nil, err
	}
	return &isbn, nil
}

// resolveType looks the type up in storage. Unknown names fail with the
// full list of persisted types.
func (s *Service) resolveType(ctx context.Context, name string) (domain.BookType, error) {
	name = domain.NormalizeTypeName(name)

	bt, err := s.types.FindByName(ctx, name)
	if err != nil {
		return domain.BookType{}, fmt.Errorf("find type: %w", err)
	}
	if bt != nil {
		return *bt, nil
	}

	all, err := s.types.List(ctx)
	if err != nil {
		return domain.BookType{}, fmt.Errorf("list types: %w", err)
	}
	valid := make([]string, len(all))
	for i, t := range all {
		valid[i] = t.Name()
	}
	return domain.BookType{}, &domain.InvalidTypeError{Name: name, ValidTypes: valid}
}

func (s *Service) ensureUniqueISBN(ctx context.Context, q domain.DuplicateQuery) error {
	res, err := s.books.CheckDuplicate(ctx, q)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if res.IsDuplicate {
		return &domain.DuplicateISBNError{ISBN: q.ISBN.String()}
	}
	return nil
}

// embed builds the embedding text and calls the embedding service. Errors
// from the service are returned as is; retrying is the caller's concern.
func (s *Service) embed(ctx context.Context, b domain.Book) (domain.Embedding, error) {
	text := embeddingText(b)
	if n := utf8.RuneCountInString(text); n > s.maxEmbeddingText {
		return domain.Embedding{}, &domain.EmbeddingTextTooLongError{Length: n, Max: s.maxEmbeddingText}
	}

	emb, err := s.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		return domain.Embedding{}, err
	}
	return emb, nil
}
