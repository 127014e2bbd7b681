package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"football-bot/config"
	"football-bot/internal/bot"
	"football-bot/internal/cache"
	"football-bot/internal/calendar"
	"football-bot/internal/database"
	"football-bot/internal/handler"
	"football-bot/internal/queue"
	"football-bot/internal/ratelimit"
	"football-bot/internal/repository"
	"football-bot/internal/scheduler"
	"football-bot/internal/service"
	"football-bot/internal/telegram"
	"football-bot/internal/worker"
	"football-bot/pkg/localtime"
	"football-bot/pkg/logger"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	announcementBuffer = 64
	shutdownTimeout    = 10 * time.Second
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.LogLevel)
	defer logger.Sync()
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal("Failed to ensure schema", zap.Error(err))
	}

	// Redis 可關閉；關閉時提醒與公告改用記憶體實作（重啟後遺失）
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
	}

	reminders, announcements := newStores(ctx, rdb, log)

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		log.Fatal("Failed to create telegram client", zap.Error(err))
	}
	log.Info("Authorized on telegram", zap.String("username", api.Self.UserName))
	cfg.Bot.Username = api.Self.UserName
	messenger := telegram.NewBotMessenger(api)

	clock := localtime.NewClock(cfg.Schedule.TimezoneShift)
	eventService := service.NewEventService(
		database.NewTransactor(pool),
		repository.NewEventRepository(pool),
		repository.NewParticipationRepository(pool),
		clock,
		cfg.Schedule.DefaultPlace,
	)
	announcer := service.NewAnnouncementService(eventService, announcements, messenger, clock, cfg.Bot.MainChatID, cfg.Schedule.Capacity)

	announcementWorker := worker.NewAnnouncementWorker(announcer, announcements)
	if err := announcementWorker.Start(ctx); err != nil {
		log.Fatal("Failed to start announcement worker", zap.Error(err))
	}

	sched := scheduler.New(cfg.Schedule, clock, eventService, announcer, reminders)
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}

	rsvpLimiter := ratelimit.New(cfg.Bot.RSVPPerMinute, cfg.Bot.RSVPPerMinute)
	apiLimiter := ratelimit.New(60, 20)
	go rsvpLimiter.RunCleanup(ctx, 10*time.Minute)
	go apiLimiter.RunCleanup(ctx, 10*time.Minute)

	footballBot := bot.New(cfg.Bot, cfg.Schedule, clock, eventService, announcer, sched, messenger, rsvpLimiter)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	if cfg.Bot.WebhookURL != "" {
		if cfg.Bot.WebhookSecret == "" {
			log.Fatal("WEBHOOK_SECRET is required when WEBHOOK_URL is set")
		}
		handler.NewWebhookHandler(footballBot, cfg.Bot.WebhookPath, cfg.Bot.WebhookSecret).RegisterRoutes(router)
	}

	feed := calendar.NewFeed("Football", clock, cfg.Schedule.GameDuration)
	public := router.Group("/", apiLimiter.Middleware())
	handler.NewEventHandler(eventService, feed, cfg.Schedule.Capacity, cfg.Schedule.UpcomingLimit).RegisterRoutes(public)

	srv := &http.Server{Addr: ":" + cfg.Bot.Port, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	log.Info("HTTP server listening", zap.String("port", cfg.Bot.Port))

	if cfg.Bot.WebhookURL != "" {
		if err := telegram.SetWebhook(api, cfg.Bot.WebhookURL+cfg.Bot.WebhookPath, cfg.Bot.WebhookSecret); err != nil {
			log.Fatal("Failed to set webhook", zap.Error(err))
		}
		log.Info("Webhook registered", zap.String("path", cfg.Bot.WebhookPath))
	} else {
		// 沒有設定 webhook 時改用 long polling
		go poll(ctx, api, footballBot)
	}

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	api.StopReceivingUpdates()
	sched.Stop()
	announcementWorker.Wait()
}

func newStores(ctx context.Context, rdb *redis.Client, log *zap.Logger) (cache.ReminderStore, queue.AnnouncementQueue) {
	if rdb == nil {
		log.Warn("Redis disabled, reminders will not survive restarts")
		return cache.NewMemoryReminderStore(), queue.NewMemoryAnnouncementQueue(announcementBuffer)
	}

	hostname, _ := os.Hostname()
	announcements, err := queue.NewRedisStreamAnnouncementQueue(ctx, rdb, hostname, nil)
	if err != nil {
		log.Fatal("Failed to initialize announcement stream", zap.Error(err))
	}
	return cache.NewRedisReminderStore(rdb), announcements
}

func poll(ctx context.Context, api *tgbotapi.BotAPI, b *bot.Bot) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			_ = b.HandleUpdate(ctx, update)
		}
	}
}
