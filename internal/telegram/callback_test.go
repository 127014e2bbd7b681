package telegram_test

import (
	"errors"
	"testing"

	"football-bot/internal/model"
	"football-bot/internal/telegram"
	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	id := uuid.New()

	t.Run("join yes", func(t *testing.T) {
		cb, err := telegram.ParseCallback(telegram.JoinData(id, true))
		require.NoError(t, err)
		assert.Equal(t, telegram.CallbackJoin, cb.Kind)
		assert.Equal(t, id, cb.EventID)
		assert.Equal(t, model.StatusGoing, cb.Status())
		assert.Zero(t, cb.Extra)
	})

	t.Run("join no", func(t *testing.T) {
		cb, err := telegram.ParseCallback(telegram.JoinData(id, false))
		require.NoError(t, err)
		assert.Equal(t, model.StatusNotGoing, cb.Status())
	})

	t.Run("extra", func(t *testing.T) {
		cb, err := telegram.ParseCallback(telegram.ExtraData(id, 2))
		require.NoError(t, err)
		assert.Equal(t, telegram.CallbackExtra, cb.Kind)
		assert.Equal(t, model.StatusGoing, cb.Status())
		assert.Equal(t, 2, cb.Extra)
	})

	invalid := []string{
		"",
		"join",
		"join:" + id.String(),
		"join:not-a-uuid:yes",
		"join:" + id.String() + ":maybe",
		"extra:" + id.String() + ":0",
		"extra:" + id.String() + ":9",
		"extra:" + id.String() + ":x",
		"leave:" + id.String() + ":yes",
	}
	for _, data := range invalid {
		t.Run("invalid "+data, func(t *testing.T) {
			_, err := telegram.ParseCallback(data)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestCallbackData_FitsTelegramLimit(t *testing.T) {
	id := uuid.New()
	assert.LessOrEqual(t, len(telegram.JoinData(id, false)), 64)
	assert.LessOrEqual(t, len(telegram.ExtraData(id, telegram.MaxExtra)), 64)
}

func TestRSVPKeyboard(t *testing.T) {
	id := uuid.New()
	kb := telegram.RSVPKeyboard(id)

	require.Len(t, kb.InlineKeyboard, 3)
	require.Len(t, kb.InlineKeyboard[2], telegram.MaxExtra)

	yes := kb.InlineKeyboard[0][0]
	require.NotNil(t, yes.CallbackData)
	assert.Equal(t, telegram.JoinData(id, true), *yes.CallbackData)
	assert.Equal(t, "➕3", kb.InlineKeyboard[2][2].Text)
}

func TestIsNotModified(t *testing.T) {
	assert.True(t, telegram.IsNotModified(errors.New("Bad Request: message is not modified: specified new message content")))
	assert.False(t, telegram.IsNotModified(errors.New("Forbidden: bot was blocked")))
	assert.False(t, telegram.IsNotModified(nil))
}
