package repository_test

import (
	"context"
	"testing"
	"time"

	"football-bot/internal/model"
	"football-bot/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParticipationRepository_CreateAndList(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	db := getTestDB(t)
	repo := repository.NewParticipationRepository(db)
	ctx := context.Background()

	eventID := createTestEvent(t, baseTime, true)

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = repo.Create(ctx, tx, newParticipation(eventID, 2, model.StatusGoing, 3, baseTime.Add(-2*time.Hour)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, tx, newParticipation(eventID, 1, model.StatusNotGoing, 0, baseTime.Add(-3*time.Hour)))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	list, err := repo.ListByEventID(ctx, eventID)

	require.NoError(t, err)
	require.Len(t, list, 2)
	// joined_at ASC
	assert.Equal(t, int64(1), list[0].UserID)
	assert.Equal(t, int64(2), list[1].UserID)
	assert.Equal(t, 3, list[1].ExtraCount)
	assert.Equal(t, model.StatusGoing, list[1].Status)
}

func TestParticipationRepository_UniquePerUser(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	db := getTestDB(t)
	repo := repository.NewParticipationRepository(db)
	ctx := context.Background()

	eventID := createTestEvent(t, baseTime, true)

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = repo.Create(ctx, tx, newParticipation(eventID, 1, model.StatusGoing, 0, baseTime))
	require.NoError(t, err)
	_, err = repo.Create(ctx, tx, newParticipation(eventID, 1, model.StatusGoing, 1, baseTime))
	require.Error(t, err, "unique (event_id, user_id) must reject a second row")
}

func TestParticipationRepository_Delete(t *testing.T) {
	cleanup := setupTestWithTruncate(t)
	defer cleanup()
	db := getTestDB(t)
	repo := repository.NewParticipationRepository(db)
	ctx := context.Background()

	eventID := createTestEvent(t, baseTime, true)

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	for _, userID := range []int64{1, 2, 3} {
		_, err = repo.Create(ctx, tx, newParticipation(eventID, userID, model.StatusGoing, 0, baseTime))
		require.NoError(t, err)
	}
	require.NoError(t, repo.DeleteByEventAndUser(ctx, tx, eventID, 2))
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, 0, countParticipations(t, eventID, 2))
	assert.Equal(t, 1, countParticipations(t, eventID, 1))

	tx, err = db.Begin(ctx)
	require.NoError(t, err)
	removed, err := repo.DeleteByEventID(ctx, tx, eventID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	assert.Equal(t, int64(2), removed)
	list, err := repo.ListByEventID(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
