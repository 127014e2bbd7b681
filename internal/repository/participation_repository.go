package repository

import (
	"context"
	"fmt"

	"football-bot/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ParticipationRepository interface {
	// ListByEventID 依 joined_at 遞增（RSVP 順序）
	ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error)
	DeleteByEventAndUser(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, userID int64) error
	DeleteByEventID(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int64, error)
}

type ParticipationRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewParticipationRepository(pool *pgxpool.Pool) ParticipationRepository {
	return &ParticipationRepositoryImpl{
		pool: pool,
	}
}

func (r *ParticipationRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error) {
	query := `
		INSERT INTO participations (
			event_id, user_id, username, full_name, status, extra_count, joined_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, event_id, user_id, username, full_name, status, extra_count, joined_at
	`

	var created model.Participation
	err := tx.QueryRow(ctx, query,
		p.EventID, p.UserID, p.Username, p.FullName, p.Status, p.ExtraCount, p.JoinedAt,
	).Scan(
		&created.ID,
		&created.EventID,
		&created.UserID,
		&created.Username,
		&created.FullName,
		&created.Status,
		&created.ExtraCount,
		&created.JoinedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create participation: %w", err)
	}

	return &created, nil
}

func (r *ParticipationRepositoryImpl) DeleteByEventAndUser(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, userID int64) error {
	query := `
		DELETE FROM participations
		WHERE event_id = $1 AND user_id = $2
	`
	_, err := tx.Exec(ctx, query, eventID, userID)
	return err
}

func (r *ParticipationRepositoryImpl) DeleteByEventID(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int64, error) {
	query := `
		DELETE FROM participations
		WHERE event_id = $1
	`
	result, err := tx.Exec(ctx, query, eventID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *ParticipationRepositoryImpl) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error) {
	query := `
		SELECT id, event_id, user_id, username, full_name, status, extra_count, joined_at
		FROM participations
		WHERE event_id = $1
		ORDER BY joined_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]*model.Participation, 0)

	for rows.Next() {
		var p model.Participation
		err := rows.Scan(
			&p.ID,
			&p.EventID,
			&p.UserID,
			&p.Username,
			&p.FullName,
			&p.Status,
			&p.ExtraCount,
			&p.JoinedAt,
		)
		if err != nil {
			return nil, err
		}
		participations = append(participations, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return participations, nil
}
