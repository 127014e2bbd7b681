package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"football-bot/internal/database"
	"football-bot/internal/model"
	"football-bot/internal/repository"
	apperrors "football-bot/pkg/app_errors"
	"football-bot/pkg/localtime"
	"football-bot/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventService interface {
	Create(ctx context.Context, scheduledAt time.Time, place string) (*model.Event, error)
	// Deactivate 停用活動並清除報名；回傳 false 表示活動不存在或已停用（不視為錯誤）
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error)
	// Nearest 最近一場即將舉行的活動；沒有時回傳 nil, nil
	Nearest(ctx context.Context) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
	RecordParticipation(ctx context.Context, req model.RecordParticipationRequest) error
	ListParticipants(ctx context.Context, id uuid.UUID) ([]*model.Participation, error)
	Roster(ctx context.Context, id uuid.UUID) (*model.EventRoster, error)
}

type EventServiceImpl struct {
	tx                database.Transactor
	repo              repository.EventRepository
	participationRepo repository.ParticipationRepository
	clock             *localtime.Clock
	defaultPlace      string
}

func NewEventService(
	tx database.Transactor,
	repo repository.EventRepository,
	participationRepo repository.ParticipationRepository,
	clock *localtime.Clock,
	defaultPlace string,
) EventService {
	return &EventServiceImpl{
		tx:                tx,
		repo:              repo,
		participationRepo: participationRepo,
		clock:             clock,
		defaultPlace:      defaultPlace,
	}
}

// storageError 保留領域錯誤，其餘包成 ErrStorage
func storageError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrEventNotFound) || errors.Is(err, apperrors.ErrInvalidInput) {
		return err
	}
	logger.WithComponent("service").Error("storage failure", zap.String("operation", operation), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", apperrors.ErrStorage, operation, err)
}

func (s *EventServiceImpl) Create(ctx context.Context, scheduledAt time.Time, place string) (*model.Event, error) {
	if scheduledAt.IsZero() {
		return nil, apperrors.ErrInvalidTimestamp
	}
	place = strings.TrimSpace(place)
	if place == "" {
		place = s.defaultPlace
	}

	event := &model.Event{
		ID:          uuid.New(),
		ScheduledAt: scheduledAt.Truncate(time.Second),
		Place:       place,
		CreatedAt:   s.clock.Now(),
		IsActive:    true,
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, storageError("Create", err)
	}

	logger.WithComponent("service").Info("event created",
		zap.String("event_id", created.ID.String()),
		zap.Time("scheduled_at", created.ScheduledAt),
		zap.String("place", created.Place),
	)
	return created, nil
}

func (s *EventServiceImpl) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	var deactivated bool
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		changed, err := s.repo.Deactivate(ctx, tx, id)
		if err != nil {
			return err
		}
		deactivated = changed
		if !changed {
			return nil
		}
		// 停用時一併清除報名紀錄
		_, err = s.participationRepo.DeleteByEventID(ctx, tx, id)
		return err
	})
	if err != nil {
		return false, storageError("Deactivate", err)
	}

	if deactivated {
		logger.WithComponent("service").Info("event deactivated", zap.String("event_id", id.String()))
	}
	return deactivated, nil
}

func (s *EventServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError("Get", err)
	}
	return event, nil
}

func (s *EventServiceImpl) ListUpcoming(ctx context.Context, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		return nil, apperrors.ErrInvalidInput
	}
	events, err := s.repo.ListActiveFrom(ctx, s.clock.Now(), limit)
	if err != nil {
		return nil, storageError("ListUpcoming", err)
	}
	return events, nil
}

func (s *EventServiceImpl) Nearest(ctx context.Context) (*model.Event, error) {
	events, err := s.ListUpcoming(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return events[0], nil
}

func (s *EventServiceImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	if params.Place != nil {
		place := strings.TrimSpace(*params.Place)
		if place == "" {
			return nil, apperrors.ErrInvalidInput
		}
		params.Place = &place
	}
	if params.ScheduledAt != nil {
		if params.ScheduledAt.IsZero() {
			return nil, apperrors.ErrInvalidTimestamp
		}
		at := params.ScheduledAt.Truncate(time.Second)
		params.ScheduledAt = &at
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return nil, storageError("Update", err)
	}
	return updated, nil
}

// RecordParticipation 以「先刪後插」取代該使用者既有的報名。
// 整個流程在同一個 transaction 內，並以 FOR UPDATE 鎖住活動列，
// 同一場活動的 RSVP 因此會序列化，不會出現同一使用者兩筆紀錄或零筆紀錄。
func (s *EventServiceImpl) RecordParticipation(ctx context.Context, req model.RecordParticipationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	participation := req.ToParticipation(s.clock.Now())

	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		event, err := s.repo.FindByIDWithLock(ctx, tx, req.EventID)
		if err != nil {
			return err
		}
		if !event.IsActive {
			return apperrors.ErrEventNotFound
		}

		if err := s.participationRepo.DeleteByEventAndUser(ctx, tx, req.EventID, req.UserID); err != nil {
			return err
		}

		_, err = s.participationRepo.Create(ctx, tx, participation)
		return err
	})
	if err != nil {
		return storageError("RecordParticipation", err)
	}

	logger.WithComponent("service").Info("participation recorded",
		zap.String("event_id", req.EventID.String()),
		zap.Int64("user_id", req.UserID),
		zap.String("status", string(participation.Status)),
		zap.Int("extra_count", participation.ExtraCount),
	)
	return nil
}

func (s *EventServiceImpl) ListParticipants(ctx context.Context, id uuid.UUID) ([]*model.Participation, error) {
	participations, err := s.participationRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, storageError("ListParticipants", err)
	}
	return participations, nil
}

func (s *EventServiceImpl) Roster(ctx context.Context, id uuid.UUID) (*model.EventRoster, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	participations, err := s.ListParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.EventRoster{Event: event, Participations: participations}, nil
}
