package book

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
	"github.com/heartmarshall/bookshelf-backend/pkg/ctxutil"
)

type typeRepo interface {
	// FindByName returns nil, nil when no type has the given name.
	FindByName(ctx context.Context, name string) (*domain.BookType, error)
	List(ctx context.Context) ([]domain.BookType, error)
}

type authorRepo interface {
	FindByNames(ctx context.Context, names []string) ([]domain.Author, error)
	// FindOrCreateMany returns one author per input name, in input order.
	FindOrCreateMany(ctx context.Context, names []string) ([]domain.Author, error)
}

type categoryRepo interface {
	FindByNames(ctx context.Context, names []string) ([]domain.Category, error)
	// FindOrCreateMany returns one category per input name, in input order.
	FindOrCreateMany(ctx context.Context, names []string) ([]domain.Category, error)
}

type bookRepo interface {
	CheckDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.DuplicateResult, error)
	// Save persists the book row, junction rows and embedding atomically.
	Save(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	// Update replaces the book row and its junction rows atomically.
	// A zero embedding keeps the stored vector.
	Update(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type embedder interface {
	GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error)
}

// Service implements the book catalog write path.
type Service struct {
	books      bookRepo
	authors    authorRepo
	categories categoryRepo
	types      typeRepo
	embedder   embedder
	log        *slog.Logger

	maxEmbeddingText int
}

// NewService creates a new Book service. A nil logger discards output.
func NewService(
	log *slog.Logger,
	books bookRepo,
	authors authorRepo,
	categories categoryRepo,
	types typeRepo,
	emb embedder,
) *Service {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		books:            books,
		authors:          authors,
		categories:       categories,
		types:            types,
		embedder:         emb,
		log:              log.With("service", "book"),
		maxEmbeddingText: domain.MaxEmbeddingTextLength,
	}
}

// requestAttr groups the request metadata carried by ctx for log records.
func requestAttr(ctx context.Context) slog.Attr {
	return slog.Group("request",
		slog.String("id", ctxutil.RequestIDFromCtx(ctx)),
		slog.String("source", ctxutil.SourceFromCtx(ctx)),
	)
}
