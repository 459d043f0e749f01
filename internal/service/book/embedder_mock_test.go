package book

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

var _ embedder = &embedderMock{}

type embedderMock struct {
	GenerateEmbeddingFunc func(ctx context.Context, text string) (domain.Embedding, error)

	calls struct {
		GenerateEmbedding []struct {
			Ctx  context.Context
			Text string
		}
	}
	lockGenerateEmbedding sync.RWMutex
}

func (mock *embedderMock) GenerateEmbedding(ctx context.Context, text string) (domain.Embedding, error) {
	if mock.GenerateEmbeddingFunc == nil {
		panic("embedderMock.GenerateEmbeddingFunc: method is nil but embedder.GenerateEmbedding was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockGenerateEmbedding.Lock()
	mock.calls.GenerateEmbedding = append(mock.calls.GenerateEmbedding, callInfo)
	mock.lockGenerateEmbedding.Unlock()
	return mock.GenerateEmbeddingFunc(ctx, text)
}

func (mock *embedderMock) GenerateEmbeddingCalls() []struct {
	Ctx  context.Context
	Text string
} {
	mock.lockGenerateEmbedding.RLock()
	calls := mock.calls.GenerateEmbedding
	mock.lockGenerateEmbedding.RUnlock()
	return calls
}
