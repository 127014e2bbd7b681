// Package scheduler drives the weekly auto-creation of games and fires the
// pre-game reminders. Reminders live in a cache.ReminderStore, so with the
// Redis store they survive restarts and are picked up on the next poll.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"football-bot/config"
	"football-bot/internal/cache"
	"football-bot/internal/model"
	"football-bot/internal/recurrence"
	"football-bot/internal/service"
	apperrors "football-bot/pkg/app_errors"
	"football-bot/pkg/localtime"
	"football-bot/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	jobTimeout     = 30 * time.Second
	claimBatchSize = 20
)

type Scheduler struct {
	cron      *cron.Cron
	clock     *localtime.Clock
	rule      recurrence.Rule
	cfg       config.ScheduleConfig
	events    service.EventService
	announcer service.AnnouncementService
	reminders cache.ReminderStore
	log       *zap.Logger
}

func New(
	cfg config.ScheduleConfig,
	clock *localtime.Clock,
	events service.EventService,
	announcer service.AnnouncementService,
	reminders cache.ReminderStore,
) *Scheduler {
	log := logger.WithComponent("scheduler")
	cl := cronLogger{log.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(clock.Location()),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		clock:     clock,
		rule:      recurrence.NewRule(cfg),
		cfg:       cfg,
		events:    events,
		announcer: announcer,
		reminders: reminders,
		log:       log,
	}
}

// Start 註冊建立活動與提醒輪詢兩個 job；啟動時先補發停機期間到期的提醒
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cfg.CreateCron, func() { s.runJob(ctx, "tick", s.tickJob) }); err != nil {
		return fmt.Errorf("invalid create cron %q: %w", s.cfg.CreateCron, err)
	}
	if s.cfg.ReminderPoll <= 0 {
		return fmt.Errorf("%w: reminder poll must be positive", apperrors.ErrInvalidInput)
	}
	s.cron.Schedule(cron.Every(s.cfg.ReminderPoll), cron.FuncJob(func() { s.runJob(ctx, "reminders", s.dispatchJob) }))

	s.runJob(ctx, "reminders", s.dispatchJob)
	s.cron.Start()

	s.log.Info("scheduler started",
		zap.String("create_cron", s.cfg.CreateCron),
		zap.Duration("reminder_poll", s.cfg.ReminderPoll),
		zap.String("location", s.clock.Location().String()),
	)
	return nil
}

// Stop 等待執行中的 job 結束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) runJob(parent context.Context, name string, job func(ctx context.Context) error) {
	if parent.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(parent, jobTimeout)
	defer cancel()

	if err := job(ctx); err != nil {
		s.log.Error("job failed", zap.String("job", name), zap.Error(err))
	}
}

func (s *Scheduler) tickJob(ctx context.Context) error {
	_, err := s.Tick(ctx)
	return err
}

func (s *Scheduler) dispatchJob(ctx context.Context) error {
	_, err := s.DispatchDueReminders(ctx)
	return err
}

// Tick 週三、週六觸發時建立兩天後的活動、排入公告並排程提醒；其他時間回傳 nil
func (s *Scheduler) Tick(ctx context.Context) (*model.Event, error) {
	now := s.clock.Now()
	target, ok := s.rule.Target(now)
	if !ok {
		s.log.Debug("tick outside trigger days", zap.Time("local_now", now))
		return nil, nil
	}

	event, err := s.events.Create(ctx, target, s.cfg.DefaultPlace)
	if err != nil {
		return nil, err
	}

	if err := s.announcer.Announce(ctx, model.AnnouncementNewEvent, event.ID); err != nil {
		s.log.Error("announce new event failed", zap.String("event_id", event.ID.String()), zap.Error(err))
	}

	if _, err := s.Plan(ctx, event); err != nil {
		return event, err
	}
	return event, nil
}

// Plan 排程（或改期）活動的提醒；提醒時間已過則移除既有提醒並回傳 false
func (s *Scheduler) Plan(ctx context.Context, event *model.Event) (bool, error) {
	fireAt := s.clock.Instant(s.rule.ReminderAt(event.ScheduledAt))

	if !event.IsActive || !fireAt.After(s.clock.UTCNow()) {
		return false, s.reminders.Cancel(ctx, event.ID)
	}

	if err := s.reminders.Schedule(ctx, event.ID, fireAt); err != nil {
		return false, fmt.Errorf("schedule reminder: %w", err)
	}

	s.log.Info("reminder scheduled",
		zap.String("event_id", event.ID.String()),
		zap.Time("fire_at", fireAt),
	)
	return true, nil
}

func (s *Scheduler) Cancel(ctx context.Context, eventID uuid.UUID) error {
	return s.reminders.Cancel(ctx, eventID)
}

// DispatchDueReminders 領取到期提醒並排入公告；已停用或不存在的活動略過
func (s *Scheduler) DispatchDueReminders(ctx context.Context) (int, error) {
	due, err := s.reminders.ClaimDue(ctx, s.clock.UTCNow(), claimBatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim reminders: %w", err)
	}

	sent := 0
	var errs []error
	for _, r := range due {
		event, err := s.events.Get(ctx, r.EventID)
		if errors.Is(err, apperrors.ErrEventNotFound) {
			continue
		}
		if err != nil {
			errs = append(errs, err)
			s.requeue(ctx, r)
			continue
		}
		if !event.IsActive {
			continue
		}

		if err := s.announcer.Announce(ctx, model.AnnouncementReminder, event.ID); err != nil {
			errs = append(errs, err)
			s.requeue(ctx, r)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.log.Info("reminders dispatched", zap.Int("count", sent))
	}
	return sent, errors.Join(errs...)
}

// requeue 暫時性失敗時放回，下一輪輪詢再試
func (s *Scheduler) requeue(ctx context.Context, r cache.Reminder) {
	if err := s.reminders.Schedule(ctx, r.EventID, r.FireAt); err != nil {
		s.log.Error("requeue reminder failed", zap.String("event_id", r.EventID.String()), zap.Error(err))
	}
}

// cronLogger 把 cron 的 logr 風格介面接到 zap
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
