package database

import (
	"context"
	"fmt"
	"time"

	"football-bot/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis 連線 Redis（提醒 ZSET 與公告 stream 使用）
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return rdb, nil
}
