package book

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

var _ authorRepo = &authorRepoMock{}

type authorRepoMock struct {
	FindByNamesFunc      func(ctx context.Context, names []string) ([]domain.Author, error)
	FindOrCreateManyFunc func(ctx context.Context, names []string) ([]domain.Author, error)

	calls struct {
		FindByNames []struct {
			Ctx   context.Context
			Names []string
		}
		FindOrCreateMany []struct {
			Ctx   context.Context
			Names []string
		}
	}
	lockFindByNames      sync.RWMutex
	lockFindOrCreateMany sync.RWMutex
}

func (mock *authorRepoMock) FindByNames(ctx context.Context, names []string) ([]domain.Author, error) {
	if mock.FindByNamesFunc == nil {
		panic("authorRepoMock.FindByNamesFunc: method is nil but authorRepo.FindByNames was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Names []string
	}{Ctx: ctx, Names: names}
	mock.lockFindByNames.Lock()
	mock.calls.FindByNames = append(mock.calls.FindByNames, callInfo)
	mock.lockFindByNames.Unlock()
	return mock.FindByNamesFunc(ctx, names)
}

func (mock *authorRepoMock) FindByNamesCalls() []struct {
	Ctx   context.Context
	Names []string
} {
	mock.lockFindByNames.RLock()
	calls := mock.calls.FindByNames
	mock.lockFindByNames.RUnlock()
	return calls
}

func (mock *authorRepoMock) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Author, error) {
	if mock.FindOrCreateManyFunc == nil {
		panic("authorRepoMock.FindOrCreateManyFunc: method is nil but authorRepo.FindOrCreateMany was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Names []string
	}{Ctx: ctx, Names: names}
	mock.lockFindOrCreateMany.Lock()
	mock.calls.FindOrCreateMany = append(mock.calls.FindOrCreateMany, callInfo)
	mock.lockFindOrCreateMany.Unlock()
	return mock.FindOrCreateManyFunc(ctx, names)
}

func (mock *authorRepoMock) FindOrCreateManyCalls() []struct {
	Ctx   context.Context
	Names []string
} {
	mock.lockFindOrCreateMany.RLock()
	calls := mock.calls.FindOrCreateMany
	mock.lockFindOrCreateMany.RUnlock()
	return calls
}
