package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"football-bot/internal/model"
	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	// ListActiveFrom 回傳 scheduled_at >= from 的有效活動，依時間遞增
	ListActiveFrom(ctx context.Context, from time.Time, limit int) ([]*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error)
	Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, scheduled_at, place, created_at, is_active`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.ScheduledAt,
		&event.Place,
		&event.CreatedAt,
		&event.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (id, scheduled_at, place, created_at, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING ` + eventColumns

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.ID, event.ScheduledAt, event.Place, event.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *EventRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	return scanEvent(tx.QueryRow(ctx, query, id))
}

func (r *EventRepositoryImpl) ListActiveFrom(ctx context.Context, from time.Time, limit int) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE is_active AND scheduled_at >= $1
		ORDER BY scheduled_at ASC, created_at ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Place != nil {
		sets = append(sets, fmt.Sprintf("place = $%d", argPos))
		args = append(args, *params.Place)
		argPos++
	}

	if params.ScheduledAt != nil {
		sets = append(sets, fmt.Sprintf("scheduled_at = $%d", argPos))
		args = append(args, *params.ScheduledAt)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	return scanEvent(r.pool.QueryRow(ctx, query, args...))
}

// Deactivate 軟刪除；回傳 false 表示活動不存在或早已停用
func (r *EventRepositoryImpl) Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `
		UPDATE events
		SET is_active = FALSE
		WHERE id = $1 AND is_active
	`
	result, err := tx.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}
