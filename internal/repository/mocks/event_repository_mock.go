package mocks

import (
	"context"
	"testing"
	"time"

	"football-bot/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockEventRepository struct {
	mock.Mock
}

type MockEventRepository_Expecter struct {
	mock *mock.Mock
}

func NewMockEventRepository(t *testing.T) *MockEventRepository {
	m := &MockEventRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventRepository) EXPECT() *MockEventRepository_Expecter {
	return &MockEventRepository_Expecter{mock: &m.Mock}
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventRepository_Expecter) Create(ctx interface{}, event interface{}) *mock.Call {
	return e.mock.On("Create", ctx, event)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventRepository_Expecter) FindByID(ctx interface{}, id interface{}) *mock.Call {
	return e.mock.On("FindByID", ctx, id)
}

func (m *MockEventRepository) ListActiveFrom(ctx context.Context, from time.Time, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (e *MockEventRepository_Expecter) ListActiveFrom(ctx interface{}, from interface{}, limit interface{}) *mock.Call {
	return e.mock.On("ListActiveFrom", ctx, from, limit)
}

func (m *MockEventRepository) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventRepository_Expecter) Update(ctx interface{}, id interface{}, params interface{}) *mock.Call {
	return e.mock.On("Update", ctx, id, params)
}

func (m *MockEventRepository) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventRepository_Expecter) FindByIDWithLock(ctx interface{}, tx interface{}, id interface{}) *mock.Call {
	return e.mock.On("FindByIDWithLock", ctx, tx, id)
}

func (m *MockEventRepository) Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, id)
	return args.Bool(0), args.Error(1)
}

func (e *MockEventRepository_Expecter) Deactivate(ctx interface{}, tx interface{}, id interface{}) *mock.Call {
	return e.mock.On("Deactivate", ctx, tx, id)
}
