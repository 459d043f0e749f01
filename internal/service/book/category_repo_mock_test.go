package book

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

var _ categoryRepo = &categoryRepoMock{}

type categoryRepoMock struct {
	FindByNamesFunc      func(ctx context.Context, names []string) ([]domain.Category, error)
	FindOrCreateManyFunc func(ctx context.Context, names []string) ([]domain.Category, error)

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

func (mock *categoryRepoMock) FindByNames(ctx context.Context, names []string) ([]domain.Category, error) {
	if mock.FindByNamesFunc == nil {
		panic("categoryRepoMock.FindByNamesFunc: method is nil but categoryRepo.FindByNames was just called")
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

func (mock *categoryRepoMock) FindByNamesCalls() []struct {
	Ctx   context.Context
	Names []string
} {
	mock.lockFindByNames.RLock()
	calls := mock.calls.FindByNames
	mock.lockFindByNames.RUnlock()
	return calls
}

func (mock *categoryRepoMock) FindOrCreateMany(ctx context.Context, names []string) ([]domain.Category, error) {
	if mock.FindOrCreateManyFunc == nil {
		panic("categoryRepoMock.FindOrCreateManyFunc: method is nil but categoryRepo.FindOrCreateMany was just called")
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

func (mock *categoryRepoMock) FindOrCreateManyCalls() []struct {
	Ctx   context.Context
	Names []string
} {
	mock.lockFindOrCreateMany.RLock()
	calls := mock.calls.FindOrCreateMany
	mock.lockFindOrCreateMany.RUnlock()
	return calls
}
