package model

import (
	"strings"
	"time"

	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
)

// ParticipationStatus 報名狀態類型
type ParticipationStatus string

const (
	StatusGoing    ParticipationStatus = "going"
	StatusNotGoing ParticipationStatus = "not_going"
)

// IsValid 驗證狀態是否有效
func (s ParticipationStatus) IsValid() bool {
	switch s {
	case StatusGoing, StatusNotGoing:
		return true
	}
	return false
}

const noName = "No name"

// Participation 一位使用者對一場活動目前的 RSVP，(EventID, UserID) 唯一
type Participation struct {
	ID         int                 `json:"id" db:"id"`
	EventID    uuid.UUID           `json:"event_id" db:"event_id"`
	UserID     int64               `json:"user_id" db:"user_id"`
	Username   *string             `json:"username,omitempty" db:"username"`
	FullName   string              `json:"full_name" db:"full_name"`
	Status     ParticipationStatus `json:"status" db:"status"`
	ExtraCount int                 `json:"extra_count" db:"extra_count"`
	JoinedAt   time.Time           `json:"joined_at" db:"joined_at"`
}

func (p *Participation) IsGoing() bool {
	return p.Status == StatusGoing
}

// DisplayName 優先 @username，其次 full name，都沒有則用固定字串
func (p *Participation) DisplayName() string {
	if p.Username != nil && *p.Username != "" {
		return "@" + *p.Username
	}
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return noName
}

// RecordParticipationRequest 一次 RSVP 動作
type RecordParticipationRequest struct {
	EventID    uuid.UUID
	UserID     int64
	Username   *string
	FullName   string
	Status     ParticipationStatus
	ExtraCount int
}

func (r RecordParticipationRequest) Validate() error {
	if !r.Status.IsValid() {
		return apperrors.ErrInvalidStatus
	}
	if r.ExtraCount < 0 {
		return apperrors.ErrNegativeExtraCount
	}
	return nil
}

// ToParticipation 轉成待寫入的紀錄；只有 going 才保留 extra count
func (r RecordParticipationRequest) ToParticipation(joinedAt time.Time) *Participation {
	extra := r.ExtraCount
	if r.Status != StatusGoing {
		extra = 0
	}
	return &Participation{
		EventID:    r.EventID,
		UserID:     r.UserID,
		Username:   r.Username,
		FullName:   r.FullName,
		Status:     r.Status,
		ExtraCount: extra,
		JoinedAt:   joinedAt,
	}
}
