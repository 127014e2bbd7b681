package calendar_test

import (
	"strings"
	"testing"
	"time"

	"football-bot/internal/calendar"
	"football-bot/internal/model"
	"football-bot/pkg/localtime"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_Serialize(t *testing.T) {
	clock := localtime.NewFixedClock(4, time.Date(2025, 9, 24, 10, 0, 0, 0, time.UTC))
	feed := calendar.NewFeed("Football", clock, 90*time.Minute)

	active := &model.Event{
		ID:          uuid.New(),
		ScheduledAt: time.Date(2025, 9, 26, 21, 0, 0, 0, time.UTC),
		Place:       "Field A",
		CreatedAt:   time.Date(2025, 9, 24, 21, 0, 0, 0, time.UTC),
		IsActive:    true,
	}
	inactive := &model.Event{ID: uuid.New(), ScheduledAt: active.ScheduledAt, IsActive: false}

	body := feed.Serialize([]*model.Event{active, inactive})

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	ve := cal.Events()[0]
	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	require.NotNil(t, uid)
	id, ok := calendar.EventID(uid.Value)
	assert.True(t, ok)
	assert.Equal(t, active.ID.String(), id)

	location := ve.GetProperty(ical.ComponentPropertyLocation)
	require.NotNil(t, location)
	assert.Equal(t, "Field A", location.Value)

	// 21:00 GMT+4 = 17:00 UTC
	start, err := ve.GetStartAt()
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2025, 9, 26, 17, 0, 0, 0, time.UTC)), "start %s", start)

	end, err := ve.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, end.Sub(start))
}

func TestFeed_Empty(t *testing.T) {
	feed := calendar.NewFeed("Football", localtime.NewClock(4), 0)

	body := feed.Serialize(nil)

	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, calendar.ProductID)
	assert.NotContains(t, body, "BEGIN:VEVENT")
}

func TestEventID_Foreign(t *testing.T) {
	_, ok := calendar.EventID("something@elsewhere")
	assert.False(t, ok)
}
