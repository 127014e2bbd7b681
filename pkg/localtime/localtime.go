// Package localtime implements the single fixed UTC offset used for every
// wall-clock value in the bot. Local times are "naive": a time.Time in UTC
// whose fields already carry the shifted wall clock, which is also how they
// are stored in TIMESTAMP (without time zone) columns.
package localtime

import (
	"fmt"
	"strings"
	"time"

	apperrors "football-bot/pkg/app_errors"
)

const InputLayout = "2006-01-02 15:04"

type Clock struct {
	Offset time.Duration
	now    func() time.Time
}

func NewClock(offsetHours int) *Clock {
	return &Clock{Offset: time.Duration(offsetHours) * time.Hour, now: time.Now}
}

// NewFixedClock 測試用：固定回傳 utcNow 的 Clock
func NewFixedClock(offsetHours int, utcNow time.Time) *Clock {
	c := NewClock(offsetHours)
	c.now = func() time.Time { return utcNow }
	return c
}

// Now returns the current local wall clock (UTC now + offset).
func (c *Clock) Now() time.Time {
	return c.FromInstant(c.now())
}

// UTCNow 真實的目前時刻，給以 UTC 儲存的提醒使用
func (c *Clock) UTCNow() time.Time {
	return c.now().UTC()
}

// FromInstant converts a real instant to the naive local wall clock.
func (c *Clock) FromInstant(t time.Time) time.Time {
	return t.UTC().Add(c.Offset)
}

// Instant converts a naive local wall clock back to the real UTC instant.
func (c *Clock) Instant(local time.Time) time.Time {
	naive := time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
	return naive.Add(-c.Offset)
}

// Location 給 cron 使用的固定時區
func (c *Clock) Location() *time.Location {
	hours := int(c.Offset / time.Hour)
	return time.FixedZone(fmt.Sprintf("UTC%+d", hours), int(c.Offset/time.Second))
}

// Parse reads "YYYY-MM-DD HH:MM" as a naive local wall clock.
func Parse(value string) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimestamp, value)
	}
	return t, nil
}
