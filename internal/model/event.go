package model

import (
	"time"

	"github.com/google/uuid"
)

// Event 一場聚會。ScheduledAt 為固定偏移後的本地時間（不帶時區）
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	Place       string    `json:"place" db:"place"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

type UpdateEventParams struct {
	Place       *string
	ScheduledAt *time.Time
}

func (p UpdateEventParams) IsEmpty() bool {
	return p.Place == nil && p.ScheduledAt == nil
}

// IsUpcoming 檢查活動是否仍在 now（本地時間）之後且未停用
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.IsActive && !e.ScheduledAt.Before(now)
}

// EventRoster 活動與其報名紀錄（依 joined_at 排序）
type EventRoster struct {
	Event          *Event           `json:"event"`
	Participations []*Participation `json:"participations"`
}
