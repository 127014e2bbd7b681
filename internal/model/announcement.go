package model

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementKind string

const (
	AnnouncementNewEvent AnnouncementKind = "new_event"
	AnnouncementReminder AnnouncementKind = "reminder"
)

// Announcement 要廣播到群組的訊息，送出時才重新渲染活動內容
type Announcement struct {
	ID        string           `json:"id"`
	Kind      AnnouncementKind `json:"kind"`
	EventID   uuid.UUID        `json:"event_id"`
	ChatID    int64            `json:"chat_id"`
	CreatedAt time.Time        `json:"created_at"`
}

func NewAnnouncement(kind AnnouncementKind, eventID uuid.UUID, chatID int64) *Announcement {
	return &Announcement{
		ID:        uuid.NewString(),
		Kind:      kind,
		EventID:   eventID,
		ChatID:    chatID,
		CreatedAt: time.Now().UTC(),
	}
}
