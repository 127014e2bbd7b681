// Package roster renders an event and its RSVPs into the HTML message the
// bot posts and edits in the group chat. Output depends only on its inputs.
package roster

import (
	"fmt"
	"strings"
	"time"

	"football-bot/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	WhenLayout = "Mon, 02 Jan 15:04"

	NobodyGoing    = "Nobody yet 👀"
	NobodyDeclined = "Nobody declined."
	EventNotFound  = "Event not found."

	NewEventHeader = "⚽ <b>New game created!</b>"
	ReminderHeader = "⏰ Reminder: Game soon!"
)

// Summary 依狀態分組後的報名，各組保留 joined_at 順序
type Summary struct {
	Going    []*model.Participation
	NotGoing []*model.Participation
	// Guests 所有 going 的 extra 總和，不計入 Going 人數
	Guests int
}

func Summarize(participations []*model.Participation) Summary {
	var s Summary
	for _, p := range participations {
		if p.IsGoing() {
			s.Going = append(s.Going, p)
			s.Guests += p.ExtraCount
			continue
		}
		s.NotGoing = append(s.NotGoing, p)
	}
	return s
}

func FormatWhen(t time.Time) string {
	return t.Format(WhenLayout)
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// Render 產生活動名單；capacity 只用於顯示，不限制報名
func Render(event *model.Event, participations []*model.Participation, capacity int) string {
	if event == nil {
		return EventNotFound
	}

	s := Summarize(participations)

	var b strings.Builder
	b.WriteString("⚽ <b>Game</b>\n")
	fmt.Fprintf(&b, "🕒 %s\n", FormatWhen(event.ScheduledAt))
	fmt.Fprintf(&b, "📍 %s\n", escape(event.Place))
	b.WriteString("\n")

	fmt.Fprintf(&b, "<b>Going (%d/%d)</b>:\n", len(s.Going), capacity)
	if len(s.Going) == 0 {
		b.WriteString(NobodyGoing + "\n")
	}
	for _, p := range s.Going {
		b.WriteString("✅ " + escape(p.DisplayName()))
		if p.ExtraCount > 0 {
			fmt.Fprintf(&b, " +%d", p.ExtraCount)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "<b>Not going (%d)</b>:\n", len(s.NotGoing))
	if len(s.NotGoing) == 0 {
		b.WriteString(NobodyDeclined)
	}
	for i, p := range s.NotGoing {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("❌ " + escape(p.DisplayName()))
	}

	return b.String()
}

// RenderRoster Render 的便捷版本
func RenderRoster(r *model.EventRoster, capacity int) string {
	if r == nil {
		return EventNotFound
	}
	return Render(r.Event, r.Participations, capacity)
}

// WithHeader 在名單前加上公告標題；header 為空時原樣回傳
func WithHeader(header, body string) string {
	if header == "" {
		return body
	}
	return header + "\n\n" + body
}
