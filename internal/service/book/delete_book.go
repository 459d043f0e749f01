package book

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// DeleteBook removes a book and its junction rows. Authors and categories stay.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.NewValidationError("id", domain.CodeRequired, "required", "")
	}

	if err := s.books.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.log.InfoContext(ctx, "book deleted", requestAttr(ctx), slog.String("book_id", id.String()))
	return nil
}
