// Package seeder imports a catalog of books through the book service,
// retrying transient embedding failures.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/heartmarshall/bookshelf-backend/internal/config"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
	"github.com/heartmarshall/bookshelf-backend/internal/service/book"
	"github.com/heartmarshall/bookshelf-backend/pkg/ctxutil"
)

const defaultInitialBackoff = time.Second

type bookCreator interface {
	CreateBook(ctx context.Context, input book.CreateBookInput) (*book.BookOutput, error)
}

// ItemError records why one catalog entry was not imported.
type ItemError struct {
	Index     int
	RequestID string
	Title     string
	Attempts  int
	Err       error
}

// Result holds the outcome of a Run.
type Result struct {
	Created  int
	Skipped  int
	Errored  int
	Failures []ItemError
	Duration time.Duration
}

// HasErrors reports whether any entry failed.
func (r Result) HasErrors() bool { return r.Errored > 0 }

// Pipeline imports catalog entries one at a time.
type Pipeline struct {
	log     *slog.Logger
	creator bookCreator
	cfg     config.SeederConfig
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, creator bookCreator, cfg config.SeederConfig) *Pipeline {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = defaultInitialBackoff
	}
	return &Pipeline{
		log:     log.With("component", "seeder"),
		creator: creator,
		cfg:     cfg,
	}
}

// Run imports books sequentially. A failed entry is recorded and the batch
// continues; duplicates by ISBN are counted as skipped. Only context
// cancellation stops the run early, and is returned as the error.
func (p *Pipeline) Run(ctx context.Context, books []CatalogBook) (Result, error) {
	start := time.Now()
	var res Result

	ctx = ctxutil.WithSource(ctx, "seeder")

	for i, b := range books {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}

		reqID := uuid.NewString()
		out, attempts, err := p.create(ctxutil.WithRequestID(ctx, reqID), b.Input())

		var dup *domain.DuplicateISBNError
		switch {
		case err == nil:
			res.Created++
			p.log.InfoContext(ctx, "book imported",
				slog.Int("index", i),
				slog.String("book_id", out.ID.String()),
				slog.String("title", out.Title),
				slog.Int("attempts", attempts),
			)
		case errors.As(err, &dup):
			res.Skipped++
			p.log.InfoContext(ctx, "book skipped: duplicate ISBN",
				slog.Int("index", i),
				slog.String("title", b.Title),
				slog.String("isbn", dup.ISBN),
			)
		default:
			res.Errored++
			res.Failures = append(res.Failures, ItemError{
				Index: i, RequestID: reqID, Title: b.Title, Attempts: attempts, Err: err,
			})
			p.log.WarnContext(ctx, "book import failed",
				slog.Int("index", i),
				slog.String("request_id", reqID),
				slog.String("title", b.Title),
				slog.Int("attempts", attempts),
				slog.String("error", err.Error()),
			)
		}
	}

	res.Duration = time.Since(start)
	p.log.InfoContext(ctx, "seeder completed",
		slog.Int("total", len(books)),
		slog.Int("created", res.Created),
		slog.Int("skipped", res.Skipped),
		slog.Int("errored", res.Errored),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// create calls CreateBook, retrying only embedding-service failures with
// exponential backoff. It returns the number of attempts made.
func (p *Pipeline) create(ctx context.Context, in book.CreateBookInput) (*book.BookOutput, int, error) {
	backoff := retry.WithMaxRetries(uint64(p.cfg.MaxAttempts-1), retry.NewExponential(p.cfg.InitialBackoff))

	var (
		out      *book.BookOutput
		attempts int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		var err error
		out, err = p.creator.CreateBook(ctx, in)
		if err == nil {
			return nil
		}
		if domain.IsEmbeddingServiceError(err) && attempts < p.cfg.MaxAttempts {
			p.log.WarnContext(ctx, "embedding unavailable, retrying",
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
				slog.String("title", in.Title),
				slog.Int("attempt", attempts),
				slog.String("error", err.Error()),
			)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, attempts, fmt.Errorf("create %q: %w", in.Title, err)
	}
	return out, attempts, nil
}
