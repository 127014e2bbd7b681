package mocks

import (
	"context"
	"testing"

	"football-bot/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockParticipationRepository struct {
	mock.Mock
}

type MockParticipationRepository_Expecter struct {
	mock *mock.Mock
}

func NewMockParticipationRepository(t *testing.T) *MockParticipationRepository {
	m := &MockParticipationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockParticipationRepository) EXPECT() *MockParticipationRepository_Expecter {
	return &MockParticipationRepository_Expecter{mock: &m.Mock}
}

func (m *MockParticipationRepository) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participation), args.Error(1)
}

func (e *MockParticipationRepository_Expecter) ListByEventID(ctx interface{}, eventID interface{}) *mock.Call {
	return e.mock.On("ListByEventID", ctx, eventID)
}

func (m *MockParticipationRepository) Create(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error) {
	args := m.Called(ctx, tx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participation), args.Error(1)
}

func (e *MockParticipationRepository_Expecter) Create(ctx interface{}, tx interface{}, p interface{}) *mock.Call {
	return e.mock.On("Create", ctx, tx, p)
}

func (m *MockParticipationRepository) DeleteByEventAndUser(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, userID int64) error {
	args := m.Called(ctx, tx, eventID, userID)
	return args.Error(0)
}

func (e *MockParticipationRepository_Expecter) DeleteByEventAndUser(ctx interface{}, tx interface{}, eventID interface{}, userID interface{}) *mock.Call {
	return e.mock.On("DeleteByEventAndUser", ctx, tx, eventID, userID)
}

func (m *MockParticipationRepository) DeleteByEventID(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (e *MockParticipationRepository_Expecter) DeleteByEventID(ctx interface{}, tx interface{}, eventID interface{}) *mock.Call {
	return e.mock.On("DeleteByEventID", ctx, tx, eventID)
}
