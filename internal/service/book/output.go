package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

// BookOutput is the public representation of a persisted book.
// The embedding vector is never part of it.
type BookOutput struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Authors     []AuthorOutput   `json:"authors"`
	Type        string           `json:"type"`
	Categories  []CategoryOutput `json:"categories"`
	Format      string           `json:"format"`
	ISBN        *string          `json:"isbn,omitempty"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	Path        *string          `json:"path,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type AuthorOutput struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CategoryOutput struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
}

func toOutput(b *domain.Book) *BookOutput {
	out := &BookOutput{
		ID:          b.ID(),
		Title:       b.Title(),
		Type:        b.Type().Name(),
		Format:      b.Format().String(),
		Description: b.Description(),
		Available:   b.Available(),
		Path:        b.Path(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
	if isbn := b.ISBN(); isbn != nil {
		s := isbn.String()
		out.ISBN = &s
	}
	for _, a := range b.Authors() {
		out.Authors = append(out.Authors, AuthorOutput{ID: a.ID(), Name: a.Name()})
	}
	for _, c := range b.Categories() {
		out.Categories = append(out.Categories, CategoryOutput{ID: c.ID(), Name: c.Name(), Description: c.Description()})
	}
	return out
}

// embeddingText joins title, author names, type name, category names and
// description with single spaces.
func embeddingText(b domain.Book) string {
	authors := b.Authors()
	categories := b.Categories()

	parts := make([]string, 0, len(authors)+len(categories)+3)
	parts = append(parts, b.Title())
	for _, a := range authors {
		parts = append(parts, a.Name())
	}
	parts = append(parts, b.Type().Name())
	for _, c := range categories {
		parts = append(parts, c.Name())
	}
	parts = append(parts, b.Description())
	return strings.Join(parts, " ")
}

// trimOrNil trims whitespace. Returns nil if result is empty.
func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
