// Package calendar exports the upcoming games as an iCalendar feed so players
// can subscribe from their phone calendar.
package calendar

import (
	"strings"
	"time"

	"football-bot/internal/model"
	"football-bot/pkg/localtime"

	ical "github.com/arran4/golang-ical"
)

const (
	ProductID = "-//football-bot//games//EN"
	uidDomain = "@football-bot"
)

type Feed struct {
	name     string
	clock    *localtime.Clock
	duration time.Duration
}

func NewFeed(name string, clock *localtime.Clock, duration time.Duration) *Feed {
	if duration <= 0 {
		duration = 2 * time.Hour
	}
	return &Feed{name: name, clock: clock, duration: duration}
}

// Build 每場活動一個 VEVENT；本地時間轉成 UTC 輸出
func (f *Feed) Build(events []*model.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(f.name)

	for _, e := range events {
		if !e.IsActive {
			continue
		}
		start := f.clock.Instant(e.ScheduledAt)

		ve := cal.AddEvent(UID(e))
		ve.SetDtStampTime(f.clock.UTCNow())
		ve.SetCreatedTime(f.clock.Instant(e.CreatedAt))
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(f.duration))
		ve.SetSummary("⚽ " + f.name)
		ve.SetLocation(e.Place)
	}
	return cal
}

// Serialize 產生 text/calendar 內容
func (f *Feed) Serialize(events []*model.Event) string {
	return f.Build(events).Serialize()
}

func UID(e *model.Event) string {
	return e.ID.String() + uidDomain
}

// EventID 由 UID 還原活動 id，非本 feed 產生的 UID 回傳 false
func EventID(uid string) (string, bool) {
	return strings.CutSuffix(uid, uidDomain)
}
