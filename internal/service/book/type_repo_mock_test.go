package book

import (
	"context"
	"sync"

	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

var _ typeRepo = &typeRepoMock{}

type typeRepoMock struct {
	FindByNameFunc func(ctx context.Context, name string) (*domain.BookType, error)
	ListFunc       func(ctx context.Context) ([]domain.BookType, error)

	calls struct {
		FindByName []struct {
			Ctx  context.Context
			Name string
		}
		List []struct {
			Ctx context.Context
		}
	}
	lockFindByName sync.RWMutex
	lockList       sync.RWMutex
}

func (mock *typeRepoMock) FindByName(ctx context.Context, name string) (*domain.BookType, error) {
	if mock.FindByNameFunc == nil {
		panic("typeRepoMock.FindByNameFunc: method is nil but typeRepo.FindByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{Ctx: ctx, Name: name}
	mock.lockFindByName.Lock()
	mock.calls.FindByName = append(mock.calls.FindByName, callInfo)
	mock.lockFindByName.Unlock()
	return mock.FindByNameFunc(ctx, name)
}

func (mock *typeRepoMock) FindByNameCalls() []struct {
	Ctx  context.Context
	Name string
} {
	mock.lockFindByName.RLock()
	calls := mock.calls.FindByName
	mock.lockFindByName.RUnlock()
	return calls
}

func (mock *typeRepoMock) List(ctx context.Context) ([]domain.BookType, error) {
	if mock.ListFunc == nil {
		panic("typeRepoMock.ListFunc: method is nil but typeRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *typeRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
