package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// GetBook returns a book by id or domain.ErrNotFound.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*BookOutput, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("id", domain.CodeRequired, "required", "")
	}

	b, err := s.books.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return toOutput(b), nil
}
