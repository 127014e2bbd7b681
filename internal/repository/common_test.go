package repository_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"football-bot/internal/model"
	"football-bot/internal/testutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// testDB 是測試用的資料庫連接池；連不上時為 nil，整合測試會自動 skip
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	db, cleanup, err := testutil.SetupDatabase()
	if err != nil {
		log.Printf("Test database unavailable, skipping integration tests: %v", err)
		os.Exit(m.Run())
	}
	testDB = db

	log.Println("Running repository tests...")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

// getTestDB 返回測試用的資料庫連接池，未連線時 skip
func getTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDB == nil {
		t.Skip("test database is not available")
	}
	return testDB
}

func setupTestWithTruncate(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	// 清空所有測試資料，保留 schema
	_, err := getTestDB(t).Exec(ctx, "TRUNCATE participations, events RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return func() {
	}
}

// createTestEvent 創建測試用 event，回傳 events.id
func createTestEvent(t *testing.T, at time.Time, active bool) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()
	query := `INSERT INTO events (id, scheduled_at, place, is_active) VALUES ($1, $2, $3, $4)`
	_, err := getTestDB(t).Exec(ctx, query, id, at, "Field A", active)
	require.NoError(t, err)
	return id
}

func countParticipations(t *testing.T, eventID uuid.UUID, userID int64) int {
	t.Helper()
	var count int
	err := getTestDB(t).QueryRow(context.Background(),
		`SELECT COUNT(*) FROM participations WHERE event_id = $1 AND user_id = $2`, eventID, userID,
	).Scan(&count)
	require.NoError(t, err)
	return count
}

func strPtr(s string) *string { return &s }

func newParticipation(eventID uuid.UUID, userID int64, status model.ParticipationStatus, extra int, joinedAt time.Time) *model.Participation {
	return &model.Participation{
		EventID:    eventID,
		UserID:     userID,
		Username:   strPtr("user"),
		FullName:   "Test User",
		Status:     status,
		ExtraCount: extra,
		JoinedAt:   joinedAt,
	}
}
