package recurrence_test

import (
	"testing"
	"time"

	"football-bot/config"
	"football-bot/internal/recurrence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func local(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func newRule() recurrence.Rule {
	return recurrence.NewRule(config.LoadTestConfig().Schedule)
}

func TestRule_Target(t *testing.T) {
	rule := newRule()

	tests := []struct {
		name   string
		now    time.Time
		want   time.Time
		wantOK bool
	}{
		{"Wednesday -> Friday", local(2025, 9, 24, 21, 0), local(2025, 9, 26, 21, 0), true},
		{"Saturday -> Monday", local(2025, 9, 27, 21, 0), local(2025, 9, 29, 21, 0), true},
		{"Tuesday no-op", local(2025, 9, 23, 21, 0), time.Time{}, false},
		{"Sunday no-op", local(2025, 9, 28, 21, 0), time.Time{}, false},
		{"Seconds zeroed", time.Date(2025, 9, 24, 21, 0, 41, 500, time.UTC), local(2025, 9, 26, 21, 0), true},
		{"Month boundary", local(2025, 9, 27, 8, 30), local(2025, 9, 29, 21, 0), true},
		{"Year boundary", local(2025, 12, 31, 21, 0), local(2026, 1, 2, 21, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := rule.Target(tt.now)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
		})
	}
}

func TestRule_ReminderAt(t *testing.T) {
	rule := newRule()
	target := local(2025, 9, 26, 21, 0)

	assert.Equal(t, local(2025, 9, 26, 18, 0), rule.ReminderAt(target))
}

func TestRule_GameDays(t *testing.T) {
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, newRule().GameDays())
}

func TestRule_UpcomingGames(t *testing.T) {
	rule := newRule()

	games, err := rule.UpcomingGames(local(2025, 9, 24, 12, 0), 4)
	require.NoError(t, err)
	require.Len(t, games, 4)

	want := []time.Time{
		local(2025, 9, 26, 21, 0),
		local(2025, 9, 29, 21, 0),
		local(2025, 10, 3, 21, 0),
		local(2025, 10, 6, 21, 0),
	}
	for i := range want {
		assert.True(t, want[i].Equal(games[i]), "game %d: got %v want %v", i, games[i], want[i])
	}

	none, err := rule.UpcomingGames(local(2025, 9, 24, 12, 0), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
