package mocks

import (
	"context"
	"testing"

	"football-bot/internal/model"
	"football-bot/internal/queue"

	"github.com/stretchr/testify/mock"
)

type MockAnnouncementQueue struct {
	mock.Mock
}

type MockAnnouncementQueue_Expecter struct {
	mock *mock.Mock
}

func NewMockAnnouncementQueue(t *testing.T) *MockAnnouncementQueue {
	m := &MockAnnouncementQueue{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAnnouncementQueue) EXPECT() *MockAnnouncementQueue_Expecter {
	return &MockAnnouncementQueue_Expecter{mock: &m.Mock}
}

func (m *MockAnnouncementQueue) Publish(ctx context.Context, announcement *model.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (e *MockAnnouncementQueue_Expecter) Publish(ctx interface{}, announcement interface{}) *mock.Call {
	return e.mock.On("Publish", ctx, announcement)
}

func (m *MockAnnouncementQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}

func (e *MockAnnouncementQueue_Expecter) Subscribe(ctx interface{}) *mock.Call {
	return e.mock.On("Subscribe", ctx)
}
