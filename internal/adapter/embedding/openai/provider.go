// Package openai generates embeddings through an OpenAI-compatible
// /v1/embeddings endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/bookshelf-backend/internal/config"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

const embeddingsPath = "/v1/embeddings"

// Provider calls the embeddings API. It never retries: callers decide
// with domain.IsEmbeddingServiceError.
type Provider struct {
	baseURL    string
	apiKey     string
	model      string
	dimensions int
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewProvider creates a Provider from cfg. A zero RequestsPerSecond disables
// rate limiting.
func NewProvider(cfg config.EmbeddingConfig, logger *slog.Logger) *Provider {
	return NewProviderWithClient(cfg, &http.Client{Timeout: cfg.Timeout}, logger)
}

// NewProviderWithClient creates a Provider with a custom HTTP client (for testing).
func NewProviderWithClient(cfg config.EmbeddingConfig, httpClient *http.Client, logger *slog.Logger) *Provider {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		httpClient: httpClient,
		limiter:    limiter,
		log:        logger.With("adapter", "openai-embedding"),
	}
}

type embeddingsRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingsResponse struct {
	Model string `json:"model"`
	Data  []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// GenerateEmbedding returns the embedding of text. Failures are
// *domain.EmbeddingError.
func (p *Provider) GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return domain.Embedding{}, classifyTransport(err)
	}

	body, err := json.Marshal(embeddingsRequest{
		Model:      p.model,
		Input:      []string{text},
		Dimensions: p.dimensions,
	})
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("openai: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+embeddingsPath, bytes.NewReader(body))
	if err != nil {
		return domain.Embedding{}, fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	p.log.DebugContext(ctx, "embedding request", slog.Int("text_length", len([]rune(text))))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.log.WarnContext(ctx, "embedding request failed", slog.String("error", err.Error()))
		return domain.Embedding{}, classifyTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		p.log.WarnContext(ctx, "embedding service error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return domain.Embedding{}, classifyStatus(resp.StatusCode, raw)
	}

	var out embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Embedding{}, &domain.EmbeddingError{
			Kind:       domain.EmbeddingBadResponse,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return domain.Embedding{}, &domain.EmbeddingError{
			Kind:       domain.EmbeddingBadResponse,
			StatusCode: resp.StatusCode,
			Err:        errors.New("response has no embedding"),
		}
	}

	vector := make([]float32, len(out.Data[0].Embedding))
	for i, f := range out.Data[0].Embedding {
		vector[i] = float32(f)
	}

	model := out.Model
	if model == "" {
		model = p.model
	}

	p.log.DebugContext(ctx, "embedding response",
		slog.String("model", model),
		slog.Int("dimensions", len(vector)),
	)

	return domain.Embedding{Vector: vector, Model: model}, nil
}

func classifyTransport(err error) error {
	kind := domain.EmbeddingUnavailable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = domain.EmbeddingTimeout
	}
	return &domain.EmbeddingError{Kind: kind, Err: err}
}

func classifyStatus(status int, body []byte) error {
	kind := domain.EmbeddingBadResponse
	if status == http.StatusTooManyRequests || status >= 500 {
		kind = domain.EmbeddingUnavailable
	}

	var msg string
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		msg = apiErr.Error.Message
	} else {
		msg = strings.TrimSpace(string(body))
	}

	var err error
	if msg != "" {
		err = errors.New(msg)
	}
	return &domain.EmbeddingError{Kind: kind, StatusCode: status, Err: err}
}
