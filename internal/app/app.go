package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bookshelf-backend/internal/adapter/embedding/openai"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/embedding/stub"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/memory"
	postgres "github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/author"
	bookrepo "github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/book"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/booktype"
	"github.com/heartmarshall/bookshelf-backend/internal/adapter/postgres/category"
	"github.com/heartmarshall/bookshelf-backend/internal/config"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
	"github.com/heartmarshall/bookshelf-backend/internal/service/book"
)

// Embedder generates embeddings for book text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error)
}

// Options select the storage backend.
type Options struct {
	// InMemory keeps everything in a go-memdb store; nothing touches PostgreSQL.
	InMemory bool
}

// Catalog is a wired book service plus the resources it owns.
type Catalog struct {
	Books *book.Service
	close func()
}

// Close releases the database pool, if any.
func (c *Catalog) Close() {
	if c.close != nil {
		c.close()
	}
}

// NewCatalog wires the book service from cfg.
func NewCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger, opts Options) (*Catalog, error) {
	emb, err := NewEmbedder(cfg.Embedding, log)
	if err != nil {
		return nil, err
	}

	if opts.InMemory {
		store, err := memory.NewDefaultStore()
		if err != nil {
			return nil, err
		}
		log.Info("using in-memory storage")
		return &Catalog{
			Books: book.NewService(log, store.Books(), store.Authors(), store.Categories(), store.Types(), emb),
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Info("connected to database",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
		slog.String("application_name", cfg.Database.ApplicationName),
	)

	return &Catalog{
		Books: book.NewService(log,
			bookrepo.New(pool), author.New(pool), category.New(pool), booktype.New(pool), emb),
		close: pool.Close,
	}, nil
}

// NewEmbedder returns the embedding adapter named by cfg.Provider.
func NewEmbedder(cfg config.EmbeddingConfig, log *slog.Logger) (Embedder, error) {
	switch cfg.Provider {
	case config.EmbeddingProviderOpenAI:
		return openai.NewProvider(cfg, log), nil
	case config.EmbeddingProviderStub:
		return stub.New(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// LogStartup writes the standard startup line.
func LogStartup(log *slog.Logger, cfg *config.Config) {
	log.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("embedding_provider", cfg.Embedding.Provider),
		slog.String("embedding_model", cfg.Embedding.Model),
	)
}
