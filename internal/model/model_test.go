package model_test

import (
	"testing"
	"time"

	"football-bot/internal/model"
	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestParticipation_DisplayName(t *testing.T) {
	assert.Equal(t, "@neo", (&model.Participation{Username: strPtr("neo"), FullName: "Thomas"}).DisplayName())
	assert.Equal(t, "Thomas Anderson", (&model.Participation{Username: strPtr(""), FullName: "Thomas Anderson"}).DisplayName())
	assert.Equal(t, "Thomas", (&model.Participation{FullName: "Thomas"}).DisplayName())
	assert.Equal(t, "No name", (&model.Participation{FullName: "  "}).DisplayName())
}

func TestRecordParticipationRequest_Validate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := model.RecordParticipationRequest{EventID: uuid.New(), UserID: 1, Status: model.StatusGoing, ExtraCount: 2}
		assert.NoError(t, req.Validate())
	})

	t.Run("NegativeExtraCount", func(t *testing.T) {
		req := model.RecordParticipationRequest{Status: model.StatusGoing, ExtraCount: -1}
		err := req.Validate()
		assert.ErrorIs(t, err, apperrors.ErrNegativeExtraCount)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		req := model.RecordParticipationRequest{Status: "maybe"}
		assert.ErrorIs(t, req.Validate(), apperrors.ErrInvalidInput)
	})
}

func TestRecordParticipationRequest_ToParticipation(t *testing.T) {
	now := time.Date(2025, 9, 24, 10, 0, 0, 0, time.UTC)
	req := model.RecordParticipationRequest{EventID: uuid.New(), UserID: 5, Status: model.StatusNotGoing, ExtraCount: 3}

	p := req.ToParticipation(now)

	assert.Equal(t, 0, p.ExtraCount, "extra guests only count for going")
	assert.Equal(t, now, p.JoinedAt)
	assert.Equal(t, int64(5), p.UserID)
}

func TestEvent_IsUpcoming(t *testing.T) {
	now := time.Date(2025, 9, 24, 10, 0, 0, 0, time.UTC)
	assert.True(t, (&model.Event{ScheduledAt: now, IsActive: true}).IsUpcoming(now))
	assert.False(t, (&model.Event{ScheduledAt: now.Add(-time.Minute), IsActive: true}).IsUpcoming(now))
	assert.False(t, (&model.Event{ScheduledAt: now.Add(time.Hour), IsActive: false}).IsUpcoming(now))
}
