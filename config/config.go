package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Bot      BotConfig      `yaml:"bot"`
	Schedule ScheduleConfig `yaml:"schedule"`
	LogLevel string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type BotConfig struct {
	Token       string  `yaml:"token"`
	MainChatID  int64   `yaml:"main_chat_id"`
	AdminIDs    []int64 `yaml:"admin_ids"`
	WebhookURL  string  `yaml:"webhook_url"`
	WebhookPath string  `yaml:"webhook_path"`
	Port        string  `yaml:"port"`
	// Telegram 每次呼叫 webhook 時帶在 X-Telegram-Bot-Api-Secret-Token header
	WebhookSecret string `yaml:"webhook_secret"`
	// 每位使用者每分鐘可按的 RSVP 按鈕次數
	RSVPPerMinute int `yaml:"rsvp_per_minute"`
	// 啟動時由 getMe 填入，用來判斷 /cmd@botname 是不是給本 bot 的
	Username string `yaml:"-"`
}

// ScheduleConfig 活動排程相關設定，所有時間都以 TimezoneShift 的固定偏移解讀
type ScheduleConfig struct {
	TimezoneShift int           `yaml:"timezone_shift"`
	DefaultPlace  string        `yaml:"default_place"`
	Capacity      int           `yaml:"capacity"`
	EventHour     int           `yaml:"event_hour"`
	EventMinute   int           `yaml:"event_minute"`
	ReminderLead  time.Duration `yaml:"reminder_lead"`
	CreateCron    string        `yaml:"create_cron"`
	ReminderPoll  time.Duration `yaml:"reminder_poll"`
	UpcomingLimit int           `yaml:"upcoming_limit"`
	// 行事曆匯出時每場的長度
	GameDuration time.Duration `yaml:"game_duration"`
}

func LoadConfig() *Config {
	cfg := &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Bot:      GetBotConfig(),
		Schedule: GetScheduleConfig(),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			panic(err)
		}
	}

	return cfg
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Enabled:  true,
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Bot: BotConfig{
			MainChatID:    -100,
			AdminIDs:      []int64{1},
			WebhookPath:   "/webhook",
			WebhookSecret: "test-secret",
			Port:          "8080",
			RSVPPerMinute: 30,
			Username:      "football_bot",
		},
		Schedule: defaultSchedule(),
		LogLevel: "debug",
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Enabled:  getEnvBool("REDIS_ENABLED", true),
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetBotConfig() BotConfig {
	adminIDs, err := ParseIDList(getEnv("ADMIN_IDS", ""))
	if err != nil {
		panic(err)
	}

	return BotConfig{
		Token:         getEnv("BOT_TOKEN", ""),
		MainChatID:    getEnvInt64("MAIN_CHAT_ID", 0),
		AdminIDs:      adminIDs,
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		WebhookPath:   getEnv("WEBHOOK_PATH", "/webhook"),
		WebhookSecret: getEnv("WEBHOOK_SECRET", ""),
		Port:          getEnv("PORT", "10000"),
		RSVPPerMinute: int(getEnvInt64("RSVP_PER_MINUTE", 30)),
	}
}

func GetScheduleConfig() ScheduleConfig {
	d := defaultSchedule()
	return ScheduleConfig{
		TimezoneShift: int(getEnvInt64("TIMEZONE_SHIFT", int64(d.TimezoneShift))),
		DefaultPlace:  getEnv("DEFAULT_PLACE", d.DefaultPlace),
		Capacity:      int(getEnvInt64("CAPACITY", int64(d.Capacity))),
		EventHour:     int(getEnvInt64("EVENT_HOUR", int64(d.EventHour))),
		EventMinute:   int(getEnvInt64("EVENT_MINUTE", int64(d.EventMinute))),
		ReminderLead:  getEnvDuration("REMINDER_LEAD", d.ReminderLead),
		CreateCron:    getEnv("CREATE_CRON", d.CreateCron),
		ReminderPoll:  getEnvDuration("REMINDER_POLL", d.ReminderPoll),
		UpcomingLimit: int(getEnvInt64("UPCOMING_LIMIT", int64(d.UpcomingLimit))),
		GameDuration:  getEnvDuration("GAME_DURATION", d.GameDuration),
	}
}

func defaultSchedule() ScheduleConfig {
	return ScheduleConfig{
		TimezoneShift: 4, // GMT+4
		DefaultPlace:  "Chikovani St.",
		Capacity:      20,
		EventHour:     21,
		EventMinute:   0,
		ReminderLead:  3 * time.Hour,
		CreateCron:    "0 21 * * 3,6", // 週三、週六 21:00（固定偏移時區）
		ReminderPoll:  30 * time.Second,
		UpcomingLimit: 10,
		GameDuration:  2 * time.Hour,
	}
}

// ApplyFile 以 YAML 檔覆寫 bot / schedule 區段，檔案中未出現的欄位保留原值
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// IsAdmin 檢查使用者是否在管理員名單內
func (b BotConfig) IsAdmin(userID int64) bool {
	for _, id := range b.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func ParseIDList(value string) ([]int64, error) {
	ids := make([]int64, 0)
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Errorf("%s: %w", key, err))
	}
	return d
}
