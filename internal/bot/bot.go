// Package bot is the interaction surface: it decodes Telegram updates into
// typed commands and button presses, checks admin privileges and turns them
// into service calls. Replies are always rendered through the roster package.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"football-bot/config"
	"football-bot/internal/model"
	"football-bot/internal/ratelimit"
	"football-bot/internal/recurrence"
	"football-bot/internal/roster"
	"football-bot/internal/service"
	"football-bot/internal/telegram"
	apperrors "football-bot/pkg/app_errors"
	"football-bot/pkg/localtime"
	"football-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// schedulePreview /schedule 顯示的場次數
const schedulePreview = 4

// ReminderPlanner 由 scheduler 實作；活動新增、改時間或刪除時同步提醒
type ReminderPlanner interface {
	Plan(ctx context.Context, event *model.Event) (bool, error)
	Cancel(ctx context.Context, eventID uuid.UUID) error
}

type Bot struct {
	cfg       config.BotConfig
	schedule  config.ScheduleConfig
	clock     *localtime.Clock
	rule      recurrence.Rule
	events    service.EventService
	announcer service.AnnouncementService
	planner   ReminderPlanner
	messenger telegram.Messenger
	limiter   *ratelimit.Limiter
	log       *zap.Logger
}

func New(
	cfg config.BotConfig,
	schedule config.ScheduleConfig,
	clock *localtime.Clock,
	events service.EventService,
	announcer service.AnnouncementService,
	planner ReminderPlanner,
	messenger telegram.Messenger,
	limiter *ratelimit.Limiter,
) *Bot {
	return &Bot{
		cfg:       cfg,
		schedule:  schedule,
		clock:     clock,
		rule:      recurrence.NewRule(schedule),
		events:    events,
		announcer: announcer,
		planner:   planner,
		messenger: messenger,
		limiter:   limiter,
		log:       logger.WithComponent("bot"),
	}
}

// HandleUpdate 處理一則 update；錯誤已記錄，回傳值僅供呼叫端參考
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	var err error
	switch {
	case update.CallbackQuery != nil:
		err = b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		err = b.handleMessage(ctx, update.Message)
	}
	if err != nil {
		b.log.Error("handle update failed", zap.Int("update_id", update.UpdateID), zap.Error(err))
	}
	return err
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	cmd, ok := ParseCommand(msg.Text)
	if !ok || msg.Chat == nil || !cmd.AddressedTo(b.cfg.Username) {
		return nil
	}

	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	if cmd.AdminOnly() && !b.cfg.IsAdmin(userID) {
		b.log.Warn("admin command rejected",
			zap.String("command", string(cmd.Name)),
			zap.Int64("user_id", userID),
			zap.Error(apperrors.ErrUnauthorized),
		)
		return nil
	}

	chatID := msg.Chat.ID
	switch cmd.Name {
	case CmdStart, CmdHelp:
		return b.reply(ctx, chatID, helpText)
	case CmdMyID:
		return b.reply(ctx, chatID, fmt.Sprintf(myIDFormat, userID))
	case CmdChatID:
		return b.reply(ctx, chatID, fmt.Sprintf(chatIDFormat, chatID))
	case CmdEvents:
		return b.listEvents(ctx, chatID)
	case CmdNext:
		return b.showNext(ctx, chatID)
	case CmdSchedule:
		return b.showSchedule(ctx, chatID)
	case CmdAddEvent:
		return b.addEvent(ctx, chatID, cmd.Args)
	case CmdDelEvent:
		return b.deleteEvent(ctx, chatID, cmd.Args)
	case CmdSetPlace:
		return b.setPlace(ctx, chatID, cmd.Args)
	case CmdSetTime:
		return b.setTime(ctx, chatID, cmd.Args)
	}
	return nil
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) error {
	_, err := b.messenger.Send(ctx, chatID, text, nil)
	return err
}

// replyError 依錯誤類別回覆使用者
func (b *Bot) replyError(ctx context.Context, chatID int64, err error) error {
	b.log.Warn("command failed", zap.Int64("chat_id", chatID), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		return b.reply(ctx, chatID, eventNotFoundText)
	default:
		return b.reply(ctx, chatID, storageFailedText)
	}
}

// sendRoster 傳送活動名單與 RSVP 鍵盤
func (b *Bot) sendRoster(ctx context.Context, chatID int64, header string, id uuid.UUID) error {
	r, err := b.events.Roster(ctx, id)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	text := roster.WithHeader(header, roster.RenderRoster(r, b.schedule.Capacity))
	kb := telegram.RSVPKeyboard(id)
	_, err = b.messenger.Send(ctx, chatID, text, &kb)
	return err
}

func (b *Bot) listEvents(ctx context.Context, chatID int64) error {
	events, err := b.events.ListUpcoming(ctx, b.schedule.UpcomingLimit)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	if len(events) == 0 {
		return b.reply(ctx, chatID, noGamesText)
	}
	for _, e := range events {
		if err := b.sendRoster(ctx, chatID, "", e.ID); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) showNext(ctx context.Context, chatID int64) error {
	event, err := b.events.Nearest(ctx)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	if event == nil {
		return b.reply(ctx, chatID, noGamesText)
	}
	return b.sendRoster(ctx, chatID, "", event.ID)
}

func (b *Bot) showSchedule(ctx context.Context, chatID int64) error {
	games, err := b.rule.UpcomingGames(b.clock.Now(), schedulePreview)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}

	lines := []string{scheduleHeader}
	for _, g := range games {
		lines = append(lines, "• "+roster.FormatWhen(g))
	}
	return b.reply(ctx, chatID, strings.Join(lines, "\n"))
}

func (b *Bot) addEvent(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		return b.reply(ctx, chatID, usageAddEvent)
	}
	parsed, err := ParseAddEvent(args)
	if err != nil {
		return b.reply(ctx, chatID, invalidAddEvent)
	}

	event, err := b.events.Create(ctx, parsed.At, parsed.Place)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}

	// 公告與提醒失敗不影響建立結果
	if err := b.announcer.Announce(ctx, model.AnnouncementNewEvent, event.ID); err != nil {
		b.log.Error("announce new event failed", zap.String("event_id", event.ID.String()), zap.Error(err))
	}
	if _, err := b.planner.Plan(ctx, event); err != nil {
		b.log.Error("plan reminder failed", zap.String("event_id", event.ID.String()), zap.Error(err))
	}

	return b.reply(ctx, chatID, fmt.Sprintf(createdFormat, event.ID))
}

func (b *Bot) deleteEvent(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		return b.reply(ctx, chatID, usageDelEvent)
	}
	id, err := ParseEventID(args)
	if err != nil {
		return b.reply(ctx, chatID, usageDelEvent)
	}

	deactivated, err := b.events.Deactivate(ctx, id)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	if !deactivated {
		return b.reply(ctx, chatID, eventNotFoundText)
	}

	if err := b.planner.Cancel(ctx, id); err != nil {
		b.log.Error("cancel reminder failed", zap.String("event_id", id.String()), zap.Error(err))
	}
	return b.reply(ctx, chatID, eventDeletedText)
}

func (b *Bot) setPlace(ctx context.Context, chatID int64, args string) error {
	place, err := ParsePlace(args)
	if err != nil {
		return b.reply(ctx, chatID, usageSetPlace)
	}
	return b.updateNearest(ctx, chatID, placeUpdatedText, model.UpdateEventParams{Place: &place})
}

func (b *Bot) setTime(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		return b.reply(ctx, chatID, usageSetTime)
	}
	at, err := localtime.Parse(args)
	if err != nil {
		return b.reply(ctx, chatID, invalidSetTime)
	}
	return b.updateNearest(ctx, chatID, timeUpdatedText, model.UpdateEventParams{ScheduledAt: &at})
}

// updateNearest 修改最近一場活動，改時間時重新排程提醒
func (b *Bot) updateNearest(ctx context.Context, chatID int64, header string, params model.UpdateEventParams) error {
	nearest, err := b.events.Nearest(ctx)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}
	if nearest == nil {
		return b.reply(ctx, chatID, noGamesText)
	}

	updated, err := b.events.Update(ctx, nearest.ID, params)
	if err != nil {
		return b.replyError(ctx, chatID, err)
	}

	if params.ScheduledAt != nil {
		if _, err := b.planner.Plan(ctx, updated); err != nil {
			b.log.Error("replan reminder failed", zap.String("event_id", updated.ID.String()), zap.Error(err))
		}
	}
	return b.sendRoster(ctx, chatID, header, updated.ID)
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) error {
	if q.From == nil {
		return nil
	}

	if b.limiter != nil && !b.limiter.Allow(strconv.FormatInt(q.From.ID, 10)) {
		return b.messenger.AnswerCallback(ctx, q.ID, tooManyClicksText)
	}

	cb, err := telegram.ParseCallback(q.Data)
	if err != nil {
		b.log.Warn("invalid callback", zap.String("data", q.Data), zap.Int64("user_id", q.From.ID), zap.Error(err))
		return b.messenger.AnswerCallback(ctx, q.ID, unknownActionText)
	}

	err = b.events.RecordParticipation(ctx, ParticipationRequest(cb, q.From))
	if err != nil {
		text := storageFailedText
		if errors.Is(err, apperrors.ErrEventNotFound) {
			text = eventNotFoundText
		}
		return errors.Join(err, b.messenger.AnswerCallback(ctx, q.ID, text))
	}

	if q.Message != nil && q.Message.Chat != nil {
		if err := b.refreshRoster(ctx, q.Message.Chat.ID, q.Message.MessageID, cb.EventID); err != nil {
			b.log.Error("refresh roster failed", zap.String("event_id", cb.EventID.String()), zap.Error(err))
		}
	}

	answer := updatedText
	if cb.Kind == telegram.CallbackExtra {
		answer = fmt.Sprintf(addedExtraFormat, cb.Extra)
	}
	return b.messenger.AnswerCallback(ctx, q.ID, answer)
}

// refreshRoster 原地更新按鈕所在的訊息
func (b *Bot) refreshRoster(ctx context.Context, chatID int64, messageID int, eventID uuid.UUID) error {
	r, err := b.events.Roster(ctx, eventID)
	if err != nil {
		return err
	}
	kb := telegram.RSVPKeyboard(eventID)
	return b.messenger.Edit(ctx, chatID, messageID, roster.RenderRoster(r, b.schedule.Capacity), &kb)
}

// ParticipationRequest 把按鈕動作與按下的使用者組成 RSVP
func ParticipationRequest(cb telegram.Callback, user *tgbotapi.User) model.RecordParticipationRequest {
	var username *string
	if user.UserName != "" {
		name := user.UserName
		username = &name
	}
	return model.RecordParticipationRequest{
		EventID:    cb.EventID,
		UserID:     user.ID,
		Username:   username,
		FullName:   strings.TrimSpace(user.FirstName + " " + user.LastName),
		Status:     cb.Status(),
		ExtraCount: cb.Extra,
	}
}
