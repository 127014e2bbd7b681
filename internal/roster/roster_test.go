package roster_test

import (
	"strings"
	"testing"
	"time"

	"football-bot/internal/model"
	"football-bot/internal/roster"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func testEvent(place string) *model.Event {
	return &model.Event{
		ID:          uuid.New(),
		ScheduledAt: time.Date(2025, 9, 26, 21, 0, 0, 0, time.UTC),
		Place:       place,
		IsActive:    true,
	}
}

func TestFormatWhen(t *testing.T) {
	assert.Equal(t, "Fri, 26 Sep 21:00", roster.FormatWhen(time.Date(2025, 9, 26, 21, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Mon, 29 Sep 09:05", roster.FormatWhen(time.Date(2025, 9, 29, 9, 5, 0, 0, time.UTC)))
}

func TestRender_Empty(t *testing.T) {
	out := roster.Render(testEvent("Field A"), nil, 20)

	assert.Contains(t, out, "Nobody yet")
	assert.Contains(t, out, "Nobody declined")
	assert.Contains(t, out, "Going (0/20)")
	assert.Contains(t, out, "Not going (0)")
	assert.Contains(t, out, "🕒 Fri, 26 Sep 21:00")
	assert.Contains(t, out, "📍 Field A")
}

func TestRender_GuestsAnnotated(t *testing.T) {
	participations := []*model.Participation{
		{UserID: 1, Username: strPtr("striker"), Status: model.StatusGoing, ExtraCount: 2},
	}

	out := roster.Render(testEvent("Field A"), participations, 20)

	assert.Contains(t, out, "@striker +2")
	// extra 不計入人數
	assert.Contains(t, out, "Going (1/20)")
}

func TestRender_OrderAndNames(t *testing.T) {
	participations := []*model.Participation{
		{UserID: 1, FullName: "Giorgi K", Status: model.StatusGoing},
		{UserID: 2, Status: model.StatusNotGoing},
		{UserID: 3, Username: strPtr("keeper"), Status: model.StatusGoing, ExtraCount: 1},
		{UserID: 4, Username: strPtr("lazy"), Status: model.StatusNotGoing},
	}

	out := roster.Render(testEvent("Field A"), participations, 20)

	assert.Less(t, strings.Index(out, "Giorgi K"), strings.Index(out, "@keeper +1"))
	assert.Less(t, strings.Index(out, "❌ No name"), strings.Index(out, "❌ @lazy"))
	assert.Contains(t, out, "Going (2/20)")
	assert.Contains(t, out, "Not going (2)")
	assert.NotContains(t, out, "Nobody")
}

func TestRender_Deterministic(t *testing.T) {
	event := testEvent("Field A")
	participations := []*model.Participation{
		{UserID: 1, Username: strPtr("a"), Status: model.StatusGoing},
	}
	assert.Equal(t, roster.Render(event, participations, 20), roster.Render(event, participations, 20))
}

func TestRender_EscapesHTML(t *testing.T) {
	participations := []*model.Participation{
		{UserID: 1, FullName: "<b>Boss</b>", Status: model.StatusGoing},
	}

	out := roster.Render(testEvent("Park & Field"), participations, 20)

	assert.Contains(t, out, "&lt;b&gt;Boss&lt;/b&gt;")
	assert.Contains(t, out, "Park &amp; Field")
}

func TestRender_NilEvent(t *testing.T) {
	assert.Equal(t, roster.EventNotFound, roster.Render(nil, nil, 20))
	assert.Equal(t, roster.EventNotFound, roster.RenderRoster(nil, 20))
}

// B going +3, A 改為 not going
func TestRender_EndToEndScenario(t *testing.T) {
	participations := []*model.Participation{
		{UserID: 2, Username: strPtr("b"), Status: model.StatusGoing, ExtraCount: 3},
		{UserID: 1, Username: strPtr("a"), Status: model.StatusNotGoing},
	}

	out := roster.RenderRoster(&model.EventRoster{Event: testEvent("Field A"), Participations: participations}, 20)

	assert.Contains(t, out, "<b>Going (1/20)</b>:\n✅ @b +3\n")
	assert.Contains(t, out, "<b>Not going (1)</b>:\n❌ @a")
}

func TestSummarize(t *testing.T) {
	s := roster.Summarize([]*model.Participation{
		{UserID: 1, Status: model.StatusGoing, ExtraCount: 2},
		{UserID: 2, Status: model.StatusGoing, ExtraCount: 1},
		{UserID: 3, Status: model.StatusNotGoing},
	})
	assert.Len(t, s.Going, 2)
	assert.Len(t, s.NotGoing, 1)
	assert.Equal(t, 3, s.Guests)
}

func TestWithHeader(t *testing.T) {
	assert.Equal(t, roster.ReminderHeader+"\n\nbody", roster.WithHeader(roster.ReminderHeader, "body"))
	assert.Equal(t, "body", roster.WithHeader("", "body"))
}
