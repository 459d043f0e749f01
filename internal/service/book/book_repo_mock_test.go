package book

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/bookshelf-backend/internal/domain"
)

var _ bookRepo = &bookRepoMock{}

type bookRepoMock struct {
	CheckDuplicateFunc func(ctx context.Context, q domain.DuplicateQuery) (domain.DuplicateResult, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	SaveFunc           func(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error)
	UpdateFunc         func(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error)

	calls struct {
		CheckDuplicate []struct {
			Ctx context.Context
			Q   domain.DuplicateQuery
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Save []struct {
			Ctx context.Context
			P   domain.SaveBookParams
		}
		Update []struct {
			Ctx context.Context
			P   domain.SaveBookParams
		}
	}
	lockCheckDuplicate sync.RWMutex
	lockDelete         sync.RWMutex
	lockGetByID        sync.RWMutex
	lockSave           sync.RWMutex
	lockUpdate         sync.RWMutex
}

func (mock *bookRepoMock) CheckDuplicate(ctx context.Context, q domain.DuplicateQuery) (domain.DuplicateResult, error) {
	if mock.CheckDuplicateFunc == nil {
		panic("bookRepoMock.CheckDuplicateFunc: method is nil but bookRepo.CheckDuplicate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Q   domain.DuplicateQuery
	}{Ctx: ctx, Q: q}
	mock.lockCheckDuplicate.Lock()
	mock.calls.CheckDuplicate = append(mock.calls.CheckDuplicate, callInfo)
	mock.lockCheckDuplicate.Unlock()
	return mock.CheckDuplicateFunc(ctx, q)
}

func (mock *bookRepoMock) CheckDuplicateCalls() []struct {
	Ctx context.Context
	Q   domain.DuplicateQuery
} {
	mock.lockCheckDuplicate.RLock()
	calls := mock.calls.CheckDuplicate
	mock.lockCheckDuplicate.RUnlock()
	return calls
}

func (mock *bookRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("bookRepoMock.DeleteFunc: method is nil but bookRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *bookRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *bookRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if mock.GetByIDFunc == nil {
		panic("bookRepoMock.GetByIDFunc: method is nil but bookRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *bookRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *bookRepoMock) Save(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error) {
	if mock.SaveFunc == nil {
		panic("bookRepoMock.SaveFunc: method is nil but bookRepo.Save was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.SaveBookParams
	}{Ctx: ctx, P: p}
	mock.lockSave.Lock()
	mock.calls.Save = append(mock.calls.Save, callInfo)
	mock.lockSave.Unlock()
	return mock.SaveFunc(ctx, p)
}

func (mock *bookRepoMock) SaveCalls() []struct {
	Ctx context.Context
	P   domain.SaveBookParams
} {
	mock.lockSave.RLock()
	calls := mock.calls.Save
	mock.lockSave.RUnlock()
	return calls
}

func (mock *bookRepoMock) Update(ctx context.Context, p domain.SaveBookParams) (*domain.Book, error) {
	if mock.UpdateFunc == nil {
		panic("bookRepoMock.UpdateFunc: method is nil but bookRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.SaveBookParams
	}{Ctx: ctx, P: p}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, p)
}

func (mock *bookRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	P   domain.SaveBookParams
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
