package mocks

import (
	"context"
	"testing"

	"football-bot/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockReminderPlanner struct {
	mock.Mock
}

type MockReminderPlanner_Expecter struct {
	mock *mock.Mock
}

func NewMockReminderPlanner(t *testing.T) *MockReminderPlanner {
	m := &MockReminderPlanner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockReminderPlanner) EXPECT() *MockReminderPlanner_Expecter {
	return &MockReminderPlanner_Expecter{mock: &m.Mock}
}

func (m *MockReminderPlanner) Plan(ctx context.Context, event *model.Event) (bool, error) {
	args := m.Called(ctx, event)
	return args.Bool(0), args.Error(1)
}

func (e *MockReminderPlanner_Expecter) Plan(ctx interface{}, event interface{}) *mock.Call {
	return e.mock.On("Plan", ctx, event)
}

func (m *MockReminderPlanner) Cancel(ctx context.Context, eventID uuid.UUID) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (e *MockReminderPlanner_Expecter) Cancel(ctx interface{}, eventID interface{}) *mock.Call {
	return e.mock.On("Cancel", ctx, eventID)
}
