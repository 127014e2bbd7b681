// Package recurrence holds the weekly rule deciding when a game is created
// automatically and when its reminder fires. All times are naive local
// wall clocks (see pkg/localtime).
package recurrence

import (
	"fmt"
	"sort"
	"time"

	"football-bot/config"

	"github.com/teambition/rrule-go"
)

// Rule 觸發日 -> 往後幾天開賽。預設週三開週五、週六開週一
type Rule struct {
	Triggers     map[time.Weekday]int
	EventHour    int
	EventMinute  int
	ReminderLead time.Duration
}

func DefaultTriggers() map[time.Weekday]int {
	return map[time.Weekday]int{
		time.Wednesday: 2,
		time.Saturday:  2,
	}
}

func NewRule(cfg config.ScheduleConfig) Rule {
	return Rule{
		Triggers:     DefaultTriggers(),
		EventHour:    cfg.EventHour,
		EventMinute:  cfg.EventMinute,
		ReminderLead: cfg.ReminderLead,
	}
}

// Target 回傳 localNow 觸發時要建立的活動時間；非觸發日回傳 false
func (r Rule) Target(localNow time.Time) (time.Time, bool) {
	days, ok := r.Triggers[localNow.Weekday()]
	if !ok {
		return time.Time{}, false
	}
	d := localNow.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), r.EventHour, r.EventMinute, 0, 0, localNow.Location()), true
}

func (r Rule) ReminderAt(target time.Time) time.Time {
	return target.Add(-r.ReminderLead)
}

var rruleWeekdays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// GameDays 會自動建立活動的星期（觸發日加上偏移），排序後回傳
func (r Rule) GameDays() []time.Weekday {
	days := make([]time.Weekday, 0, len(r.Triggers))
	for trigger, offset := range r.Triggers {
		days = append(days, time.Weekday((int(trigger)+offset)%7))
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Series 自動建立之活動的 RRULE（FREQ=WEEKLY），起點為 from
func (r Rule) Series(from time.Time, count int) (*rrule.RRule, error) {
	days := r.GameDays()
	byDay := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		byDay = append(byDay, rruleWeekdays[d])
	}

	series, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: byDay,
		Byhour:    []int{r.EventHour},
		Byminute:  []int{r.EventMinute},
		Bysecond:  []int{0},
		Dtstart:   from,
		Count:     count,
	})
	if err != nil {
		return nil, fmt.Errorf("build recurrence: %w", err)
	}
	return series, nil
}

// UpcomingGames 預覽 from 之後會自動建立的 n 場活動時間
func (r Rule) UpcomingGames(from time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	series, err := r.Series(from.Truncate(time.Second), n)
	if err != nil {
		return nil, err
	}
	return series.All(), nil
}
