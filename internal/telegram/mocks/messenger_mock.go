package mocks

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"
)

type MockMessenger struct {
	mock.Mock
}

type MockMessenger_Expecter struct {
	mock *mock.Mock
}

func NewMockMessenger(t *testing.T) *MockMessenger {
	m := &MockMessenger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockMessenger) EXPECT() *MockMessenger_Expecter {
	return &MockMessenger_Expecter{mock: &m.Mock}
}

func (m *MockMessenger) Send(ctx context.Context, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error) {
	args := m.Called(ctx, chatID, text, keyboard)
	return args.Int(0), args.Error(1)
}

func (e *MockMessenger_Expecter) Send(ctx interface{}, chatID interface{}, text interface{}, keyboard interface{}) *mock.Call {
	return e.mock.On("Send", ctx, chatID, text, keyboard)
}

func (m *MockMessenger) Edit(ctx context.Context, chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	args := m.Called(ctx, chatID, messageID, text, keyboard)
	return args.Error(0)
}

func (e *MockMessenger_Expecter) Edit(ctx interface{}, chatID interface{}, messageID interface{}, text interface{}, keyboard interface{}) *mock.Call {
	return e.mock.On("Edit", ctx, chatID, messageID, text, keyboard)
}

func (m *MockMessenger) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	args := m.Called(ctx, callbackID, text)
	return args.Error(0)
}

func (e *MockMessenger_Expecter) AnswerCallback(ctx interface{}, callbackID interface{}, text interface{}) *mock.Call {
	return e.mock.On("AnswerCallback", ctx, callbackID, text)
}
