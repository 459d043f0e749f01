package seeder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bookshelf-backend/internal/config"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
	"github.com/heartmarshall/bookshelf-backend/internal/service/book"
	"github.com/heartmarshall/bookshelf-backend/pkg/ctxutil"
)

// fakeCreator returns scripted errors per title, in call order.
type fakeCreator struct {
	mu     sync.Mutex
	script map[string][]error
	calls  map[string]int
	reqIDs map[string][]string
}

func newFakeCreator() *fakeCreator {
	return &fakeCreator{script: map[string][]error{}, calls: map[string]int{}, reqIDs: map[string][]string{}}
}

func (f *fakeCreator) CreateBook(ctx context.Context, in book.CreateBookInput) (*book.BookOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := f.calls[in.Title]
	f.calls[in.Title] = n + 1
	f.reqIDs[in.Title] = append(f.reqIDs[in.Title], ctxutil.RequestIDFromCtx(ctx)+"/"+ctxutil.SourceFromCtx(ctx))

	if errs := f.script[in.Title]; n < len(errs) && errs[n] != nil {
		return nil, errs[n]
	}
	return &book.BookOutput{ID: uuid.New(), Title: in.Title}, nil
}

func (f *fakeCreator) callsFor(title string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[title]
}

func testConfig() config.SeederConfig {
	return config.SeederConfig{MaxAttempts: 3, InitialBackoff: time.Millisecond}
}

func newTestPipeline(c bookCreator, cfg config.SeederConfig) *Pipeline {
	return NewPipeline(slog.New(slog.NewTextHandler(io.Discard, nil)), c, cfg)
}

func unavailable() error {
	return &domain.EmbeddingError{Kind: domain.EmbeddingUnavailable, StatusCode: 503}
}

func TestPipeline_Run_AllCreated(t *testing.T) {
	t.Parallel()
	c := newFakeCreator()
	p := newTestPipeline(c, testConfig())

	res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.False(t, res.HasErrors())
}

func TestPipeline_Run_RetriesTransientEmbeddingFailure(t *testing.T) {
	t.Parallel()
	c := newFakeCreator()
	c.script["A"] = []error{unavailable(), unavailable()}
	p := newTestPipeline(c, testConfig())

	res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 3, c.callsFor("A"))
}

func TestPipeline_Run_ExhaustsRetries(t *testing.T) {
	t.Parallel()
	c := newFakeCreator()
	c.script["A"] = []error{unavailable(), unavailable(), unavailable(), nil}
	p := newTestPipeline(c, testConfig())

	res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)

	assert.Equal(t, 3, c.callsFor("A"), "MaxAttempts bounds the calls")
	assert.Equal(t, 1, res.Errored)
	assert.Equal(t, 1, res.Created, "one failure does not abort the batch")
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 3, res.Failures[0].Attempts)
	assert.True(t, domain.IsEmbeddingServiceError(res.Failures[0].Err))
	assert.NotEmpty(t, res.Failures[0].RequestID)
}

func TestPipeline_Run_TagsRequests(t *testing.T) {
	t.Parallel()

	c := newFakeCreator()
	c.script["A"] = []error{unavailable()}
	p := newTestPipeline(c, testConfig())

	_, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)

	c.mu.Lock()
	defer c.mu.Unlock()

	require.Len(t, c.reqIDs["A"], 2)
	assert.Equal(t, c.reqIDs["A"][0], c.reqIDs["A"][1], "retries reuse the item's request id")
	assert.Contains(t, c.reqIDs["A"][0], "/seeder")
	require.Len(t, c.reqIDs["B"], 1)
	assert.NotEqual(t, c.reqIDs["A"][0], c.reqIDs["B"][0])
}

func TestPipeline_Run_NonRetryableErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"validation", domain.NewValidationError("title", domain.CodeRequired, "title is required", "")},
		{"invalid type", &domain.InvalidTypeError{Name: "cookbook"}},
		{"bad response", &domain.EmbeddingError{Kind: domain.EmbeddingBadResponse, StatusCode: 400}},
		{"text too long", &domain.EmbeddingTextTooLongError{Length: 8000, Max: 7000}},
		{"internal", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newFakeCreator()
			c.script["A"] = []error{tt.err}
			p := newTestPipeline(c, testConfig())

			res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}})
			require.NoError(t, err)

			assert.Equal(t, 1, c.callsFor("A"))
			assert.Equal(t, 1, res.Errored)
			assert.ErrorIs(t, res.Failures[0].Err, tt.err)
		})
	}
}

func TestPipeline_Run_DuplicateIsSkipped(t *testing.T) {
	t.Parallel()
	c := newFakeCreator()
	c.script["A"] = []error{&domain.DuplicateISBNError{ISBN: "9780132350884"}}
	p := newTestPipeline(c, testConfig())

	res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}, {Title: "B"}})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Created)
	assert.Zero(t, res.Errored)
	assert.Equal(t, 1, c.callsFor("A"))
}

func TestPipeline_Run_CanceledContext(t *testing.T) {
	t.Parallel()
	c := newFakeCreator()
	p := newTestPipeline(c, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := p.Run(ctx, []CatalogBook{{Title: "A"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Created)
	assert.Zero(t, c.callsFor("A"))
}

func TestPipeline_Run_SingleAttempt(t *testing.T) {
	t.Parallel()
	c := newFakeCreator()
	c.script["A"] = []error{unavailable()}
	cfg := testConfig()
	cfg.MaxAttempts = 1
	p := newTestPipeline(c, cfg)

	res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}})
	require.NoError(t, err)

	assert.Equal(t, 1, c.callsFor("A"))
	assert.Equal(t, 1, res.Errored)
}

func TestNewPipeline_DefaultsNonPositiveBackoff(t *testing.T) {
	t.Parallel()

	for _, backoff := range []time.Duration{0, -time.Second} {
		p := newTestPipeline(newFakeCreator(), config.SeederConfig{MaxAttempts: 2, InitialBackoff: backoff})
		assert.Equal(t, defaultInitialBackoff, p.cfg.InitialBackoff)

		res, err := p.Run(context.Background(), []CatalogBook{{Title: "A"}})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
	}
}
