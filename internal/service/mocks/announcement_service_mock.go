package mocks

import (
	"context"
	"testing"

	"football-bot/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAnnouncementService struct {
	mock.Mock
}

type MockAnnouncementService_Expecter struct {
	mock *mock.Mock
}

func NewMockAnnouncementService(t *testing.T) *MockAnnouncementService {
	m := &MockAnnouncementService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAnnouncementService) EXPECT() *MockAnnouncementService_Expecter {
	return &MockAnnouncementService_Expecter{mock: &m.Mock}
}

func (m *MockAnnouncementService) Announce(ctx context.Context, kind model.AnnouncementKind, eventID uuid.UUID) error {
	args := m.Called(ctx, kind, eventID)
	return args.Error(0)
}

func (e *MockAnnouncementService_Expecter) Announce(ctx interface{}, kind interface{}, eventID interface{}) *mock.Call {
	return e.mock.On("Announce", ctx, kind, eventID)
}

func (m *MockAnnouncementService) Deliver(ctx context.Context, announcement *model.Announcement) error {
	args := m.Called(ctx, announcement)
	return args.Error(0)
}

func (e *MockAnnouncementService_Expecter) Deliver(ctx interface{}, announcement interface{}) *mock.Call {
	return e.mock.On("Deliver", ctx, announcement)
}
