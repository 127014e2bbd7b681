package mocks

import (
	"context"
	"testing"
	"time"

	"football-bot/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

type MockEventService_Expecter struct {
	mock *mock.Mock
}

func NewMockEventService(t *testing.T) *MockEventService {
	m := &MockEventService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventService) EXPECT() *MockEventService_Expecter {
	return &MockEventService_Expecter{mock: &m.Mock}
}

func (m *MockEventService) Create(ctx context.Context, scheduledAt time.Time, place string) (*model.Event, error) {
	args := m.Called(ctx, scheduledAt, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventService_Expecter) Create(ctx interface{}, scheduledAt interface{}, place interface{}) *mock.Call {
	return e.mock.On("Create", ctx, scheduledAt, place)
}

func (m *MockEventService) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (e *MockEventService_Expecter) Deactivate(ctx interface{}, id interface{}) *mock.Call {
	return e.mock.On("Deactivate", ctx, id)
}

func (m *MockEventService) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventService_Expecter) Get(ctx interface{}, id interface{}) *mock.Call {
	return e.mock.On("Get", ctx, id)
}

func (m *MockEventService) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (e *MockEventService_Expecter) ListUpcoming(ctx interface{}, limit interface{}) *mock.Call {
	return e.mock.On("ListUpcoming", ctx, limit)
}

func (m *MockEventService) Nearest(ctx context.Context) (*model.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventService_Expecter) Nearest(ctx interface{}) *mock.Call {
	return e.mock.On("Nearest", ctx)
}

func (m *MockEventService) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (e *MockEventService_Expecter) Update(ctx interface{}, id interface{}, params interface{}) *mock.Call {
	return e.mock.On("Update", ctx, id, params)
}

func (m *MockEventService) RecordParticipation(ctx context.Context, req model.RecordParticipationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (e *MockEventService_Expecter) RecordParticipation(ctx interface{}, req interface{}) *mock.Call {
	return e.mock.On("RecordParticipation", ctx, req)
}

func (m *MockEventService) ListParticipants(ctx context.Context, id uuid.UUID) ([]*model.Participation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participation), args.Error(1)
}

func (e *MockEventService_Expecter) ListParticipants(ctx interface{}, id interface{}) *mock.Call {
	return e.mock.On("ListParticipants", ctx, id)
}

func (m *MockEventService) Roster(ctx context.Context, id uuid.UUID) (*model.EventRoster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventRoster), args.Error(1)
}

func (e *MockEventService_Expecter) Roster(ctx interface{}, id interface{}) *mock.Call {
	return e.mock.On("Roster", ctx, id)
}
