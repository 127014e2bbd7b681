// Package testutil connects integration tests to the test Postgres and Redis
// declared in config.LoadTestConfig. Callers skip when a service is down.
package testutil

import (
	"context"
	"fmt"
	"log"

	"football-bot/config"
	"football-bot/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// SetupDatabase 連線測試 DB 並建立 schema
func SetupDatabase() (*pgxpool.Pool, func(), error) {
	cfg := config.LoadTestConfig()

	db, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	log.Println("Test database connected successfully")

	cleanup := func() {
		db.Close()
		log.Println("Test database closed")
	}
	return db, cleanup, nil
}

// SetupRedisOnly 僅初始化 Redis，用於只依賴 Redis 的測試（提醒、公告佇列）
func SetupRedisOnly() (*redis.Client, func(), error) {
	cfg := config.LoadTestConfig()
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	log.Println("Test redis connected successfully")

	cleanup := func() { rdb.Close() }
	return rdb, cleanup, nil
}
