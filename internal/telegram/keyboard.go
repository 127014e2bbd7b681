package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// RSVPKeyboard Going / Not going 各一列，+1..+3 同一列
func RSVPKeyboard(eventID uuid.UUID) tgbotapi.InlineKeyboardMarkup {
	extras := make([]tgbotapi.InlineKeyboardButton, 0, MaxExtra)
	for n := 1; n <= MaxExtra; n++ {
		extras = append(extras, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("➕%d", n), ExtraData(eventID, n)))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✅ Going", JoinData(eventID, true))),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Not going", JoinData(eventID, false))),
		tgbotapi.NewInlineKeyboardRow(extras...),
	)
}
