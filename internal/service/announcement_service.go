package service

import (
	"context"
	"errors"
	"fmt"

	"football-bot/internal/model"
	"football-bot/internal/queue"
	"football-bot/internal/roster"
	"football-bot/internal/telegram"
	apperrors "football-bot/pkg/app_errors"
	"football-bot/pkg/localtime"
	"football-bot/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AnnouncementService interface {
	// 廣播排入佇列(非同步)，由 worker 呼叫 Deliver 送出
	Announce(ctx context.Context, kind model.AnnouncementKind, eventID uuid.UUID) error
	// 送出：重新讀取活動目前狀態並渲染
	Deliver(ctx context.Context, announcement *model.Announcement) error
}

type AnnouncementServiceImpl struct {
	events    EventService
	queue     queue.AnnouncementQueue
	messenger telegram.Messenger
	clock     *localtime.Clock
	chatID    int64
	capacity  int
}

func NewAnnouncementService(
	events EventService,
	announcementQueue queue.AnnouncementQueue,
	messenger telegram.Messenger,
	clock *localtime.Clock,
	chatID int64,
	capacity int,
) AnnouncementService {
	return &AnnouncementServiceImpl{
		events:    events,
		queue:     announcementQueue,
		messenger: messenger,
		clock:     clock,
		chatID:    chatID,
		capacity:  capacity,
	}
}

func (s *AnnouncementServiceImpl) Announce(ctx context.Context, kind model.AnnouncementKind, eventID uuid.UUID) error {
	announcement := model.NewAnnouncement(kind, eventID, s.chatID)
	if err := s.queue.Publish(ctx, announcement); err != nil {
		return fmt.Errorf("publish announcement: %w", err)
	}

	logger.WithComponent("service").Debug("announcement queued",
		zap.String("announcement_id", announcement.ID),
		zap.String("kind", string(kind)),
		zap.String("event_id", eventID.String()),
	)
	return nil
}

// Deliver 活動已停用或已開賽的提醒直接略過；回傳 ErrEventNotFound 時 worker 不重試
func (s *AnnouncementServiceImpl) Deliver(ctx context.Context, announcement *model.Announcement) error {
	r, err := s.events.Roster(ctx, announcement.EventID)
	if err != nil {
		return err
	}

	body := roster.RenderRoster(r, s.capacity)

	switch announcement.Kind {
	case model.AnnouncementNewEvent:
		if !r.Event.IsActive {
			return apperrors.ErrEventNotFound
		}
		keyboard := telegram.RSVPKeyboard(r.Event.ID)
		_, err = s.messenger.Send(ctx, announcement.ChatID, roster.WithHeader(roster.NewEventHeader, body), &keyboard)

	case model.AnnouncementReminder:
		if !r.Event.IsUpcoming(s.clock.Now()) {
			logger.WithComponent("service").Info("skip stale reminder",
				zap.String("event_id", r.Event.ID.String()),
				zap.Bool("is_active", r.Event.IsActive),
			)
			return nil
		}
		_, err = s.messenger.Send(ctx, announcement.ChatID, roster.WithHeader(roster.ReminderHeader, body), nil)

	default:
		return fmt.Errorf("%w: announcement kind %q", apperrors.ErrInvalidInput, announcement.Kind)
	}

	if err != nil {
		return fmt.Errorf("send announcement: %w", err)
	}
	return nil
}

// IsPermanent 不需重試的錯誤
func IsPermanent(err error) bool {
	return errors.Is(err, apperrors.ErrEventNotFound) || errors.Is(err, apperrors.ErrInvalidInput)
}
