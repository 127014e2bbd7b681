package mocks

import (
	"context"
	"testing"
	"time"

	"football-bot/internal/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReminderStore struct {
	mock.Mock
}

type MockReminderStore_Expecter struct {
	mock *mock.Mock
}

func NewMockReminderStore(t *testing.T) *MockReminderStore {
	m := &MockReminderStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReminderStore) EXPECT() *MockReminderStore_Expecter {
	return &MockReminderStore_Expecter{mock: &m.Mock}
}

func (m *MockReminderStore) Schedule(ctx context.Context, eventID uuid.UUID, fireAt time.Time) error {
	args := m.Called(ctx, eventID, fireAt)
	return args.Error(0)
}

func (e *MockReminderStore_Expecter) Schedule(ctx interface{}, eventID interface{}, fireAt interface{}) *mock.Call {
	return e.mock.On("Schedule", ctx, eventID, fireAt)
}

func (m *MockReminderStore) Cancel(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (e *MockReminderStore_Expecter) Cancel(ctx interface{}, eventID interface{}) *mock.Call {
	return e.mock.On("Cancel", ctx, eventID)
}

func (m *MockReminderStore) ClaimDue(ctx context.Context, now time.Time, limit int) ([]cache.Reminder, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cache.Reminder), args.Error(1)
}

func (e *MockReminderStore_Expecter) ClaimDue(ctx interface{}, now interface{}, limit interface{}) *mock.Call {
	return e.mock.On("ClaimDue", ctx, now, limit)
}

func (m *MockReminderStore) Pending(ctx context.Context) ([]cache.Reminder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cache.Reminder), args.Error(1)
}

func (e *MockReminderStore_Expecter) Pending(ctx interface{}) *mock.Call {
	return e.mock.On("Pending", ctx)
}
