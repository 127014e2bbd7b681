// Package telegram is the outbound side of the bot: sending and editing HTML
// messages with the RSVP keyboard, and the callback payload format.
package telegram

import (
	"context"
	"strings"

	"football-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Messenger interface {
	// Send 傳送 HTML 訊息，keyboard 可為 nil；回傳 message id
	Send(ctx context.Context, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error)
	// Edit 原地更新訊息；內容未變動不視為錯誤
	Edit(ctx context.Context, chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(ctx context.Context, callbackID string, text string) error
}

type BotMessengerImpl struct {
	api *tgbotapi.BotAPI
}

func NewBotMessenger(api *tgbotapi.BotAPI) Messenger {
	return &BotMessengerImpl{api: api}
}

func (m *BotMessengerImpl) Send(ctx context.Context, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}

	sent, err := m.api.Send(msg)
	if err != nil {
		logger.WithComponent("telegram").Error("send message failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return 0, err
	}
	return sent.MessageID, nil
}

func (m *BotMessengerImpl) Edit(ctx context.Context, chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = true
	if keyboard != nil {
		edit.ReplyMarkup = keyboard
	}

	if _, err := m.api.Request(edit); err != nil {
		if IsNotModified(err) {
			return nil
		}
		logger.WithComponent("telegram").Error("edit message failed",
			zap.Int64("chat_id", chatID), zap.Int("message_id", messageID), zap.Error(err))
		return err
	}
	return nil
}

func (m *BotMessengerImpl) AnswerCallback(ctx context.Context, callbackID string, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := m.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// IsNotModified 同一使用者重按相同按鈕時 Telegram 回傳的錯誤
func IsNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// SetWebhook 向 Telegram 註冊 webhook URL，之後每次呼叫都會帶上 secret
func SetWebhook(api *tgbotapi.BotAPI, url, secret string) error {
	_, err := api.MakeRequest("setWebhook", tgbotapi.Params{
		"url":          url,
		"secret_token": secret,
	})
	return err
}
