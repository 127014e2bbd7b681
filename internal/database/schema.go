package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// scheduled_at / joined_at 都是固定偏移後的本地時間，所以用 TIMESTAMP（不帶時區）
var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id           UUID PRIMARY KEY,
		scheduled_at TIMESTAMP NOT NULL,
		place        TEXT NOT NULL,
		created_at   TIMESTAMP NOT NULL DEFAULT (now() AT TIME ZONE 'UTC'),
		is_active    BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_active_scheduled
		ON events (scheduled_at) WHERE is_active`,
	`CREATE TABLE IF NOT EXISTS participations (
		id          SERIAL PRIMARY KEY,
		event_id    UUID NOT NULL REFERENCES events(id),
		user_id     BIGINT NOT NULL,
		username    TEXT,
		full_name   TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL CHECK (status IN ('going', 'not_going')),
		extra_count INTEGER NOT NULL DEFAULT 0 CHECK (extra_count >= 0),
		joined_at   TIMESTAMP NOT NULL,
		CONSTRAINT uk_participations_event_user UNIQUE (event_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_participations_event_joined
		ON participations (event_id, joined_at, id)`,
}

// EnsureSchema 建立資料表（可重複執行）
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
