package service

import (
	"context"
	"errors"
	"sync/atomic"

	"nurse-directory/pkg/core/nurse/model"
	"nurse-directory/pkg/core/nurse/repository/dao"
)

// Compile-time check to ensure MockNurseRepository implements NurseRepository
var _ dao.NurseRepository = (*MockNurseRepository)(nil)

// MockNurseRepository is a Func-field mock of dao.NurseRepository.
type MockNurseRepository struct {
	InsertFunc       func(ctx context.Context, nurse model.Nurse) (model.Nurse, error)
	QueryByIDFunc    func(ctx context.Context, id int64) (model.Nurse, error)
	QueryByUserFunc  func(ctx context.Context, user string) (model.Nurse, error)
	ListAllFunc      func(ctx context.Context) ([]model.Nurse, error)
	ListFilteredFunc func(ctx context.Context, filter model.Filter) ([]model.Nurse, error)
	UpdateFunc       func(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error)
	DeleteFunc       func(ctx context.Context, id int64) error
	PingFunc         func(ctx context.Context) error

	InsertCallCount       int32
	ListAllCallCount      int32
	ListFilteredCallCount int32
}

func (m *MockNurseRepository) Insert(ctx context.Context, nurse model.Nurse) (model.Nurse, error) {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, nurse)
	}
	return model.Nurse{}, errors.New("InsertFunc not implemented in mock")
}

func (m *MockNurseRepository) QueryByID(ctx context.Context, id int64) (model.Nurse, error) {
	if m.QueryByIDFunc != nil {
		return m.QueryByIDFunc(ctx, id)
	}
	return model.Nurse{}, errors.New("QueryByIDFunc not implemented in mock")
}

func (m *MockNurseRepository) QueryByUser(ctx context.Context, user string) (model.Nurse, error) {
	if m.QueryByUserFunc != nil {
		return m.QueryByUserFunc(ctx, user)
	}
	return model.Nurse{}, errors.New("QueryByUserFunc not implemented in mock")
}

func (m *MockNurseRepository) ListAll(ctx context.Context) ([]model.Nurse, error) {
	atomic.AddInt32(&m.ListAllCallCount, 1)
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockNurseRepository) ListFiltered(ctx context.Context, filter model.Filter) ([]model.Nurse, error) {
	atomic.AddInt32(&m.ListFilteredCallCount, 1)
	if m.ListFilteredFunc != nil {
		return m.ListFilteredFunc(ctx, filter)
	}
	return nil, nil
}

func (m *MockNurseRepository) Update(ctx context.Context, id int64, patch model.NursePatch) (model.Nurse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return model.Nurse{}, errors.New("UpdateFunc not implemented in mock")
}

func (m *MockNurseRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc not implemented in mock")
}

func (m *MockNurseRepository) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
