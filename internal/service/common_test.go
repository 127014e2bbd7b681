package service_test

import (
	"context"
	"log"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"football-bot/internal/model"
	"football-bot/internal/testutil"
	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testDB 連不上時為 nil，整合測試 skip，其餘 mock 測試照跑
var testDB *pgxpool.Pool

func TestMain(m *testing.M) {
	db, cleanup, err := testutil.SetupDatabase()
	if err != nil {
		log.Printf("Test database unavailable, skipping integration tests: %v", err)
		os.Exit(m.Run())
	}
	testDB = db

	log.Println("Running service tests...")
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func getTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDB == nil {
		t.Skip("test database is not available")
	}
	return testDB
}

func setupTestWithTruncate(t *testing.T) {
	t.Helper()
	_, err := getTestDB(t).Exec(context.Background(), "TRUNCATE participations, events RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// 2025-09-24 17:00 UTC = 週三 21:00 (GMT+4)
var wednesdayEvening = time.Date(2025, 9, 24, 17, 0, 0, 0, time.UTC)

func strPtr(s string) *string {
	return &s
}

// memoryStore 同時實作 EventRepository 與 ParticipationRepository，
// 用於驗證 service 在多次操作之後的整體狀態
type memoryStore struct {
	mu             sync.Mutex
	events         map[uuid.UUID]*model.Event
	participations []*model.Participation
	nextID         int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{events: make(map[uuid.UUID]*model.Event)}
}

type memoryEvents struct{ s *memoryStore }

type memoryParticipations struct{ s *memoryStore }

func (m memoryEvents) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	copied := *event
	copied.IsActive = true
	m.s.events[event.ID] = &copied
	out := copied
	return &out, nil
}

func (m memoryEvents) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	event, ok := m.s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	out := *event
	return &out, nil
}

func (m memoryEvents) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error) {
	return m.FindByID(ctx, id)
}

func (m memoryEvents) ListActiveFrom(ctx context.Context, from time.Time, limit int) ([]*model.Event, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	events := make([]*model.Event, 0)
	for _, e := range m.s.events {
		if e.IsActive && !e.ScheduledAt.Before(from) {
			out := *e
			events = append(events, &out)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].ScheduledAt.Equal(events[j].ScheduledAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].ScheduledAt.Before(events[j].ScheduledAt)
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (m memoryEvents) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	event, ok := m.s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	if params.Place != nil {
		event.Place = *params.Place
	}
	if params.ScheduledAt != nil {
		event.ScheduledAt = *params.ScheduledAt
	}
	out := *event
	return &out, nil
}

func (m memoryEvents) Deactivate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	event, ok := m.s.events[id]
	if !ok || !event.IsActive {
		return false, nil
	}
	event.IsActive = false
	return true, nil
}

func (m memoryParticipations) ListByEventID(ctx context.Context, eventID uuid.UUID) ([]*model.Participation, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*model.Participation, 0)
	for _, p := range m.s.participations {
		if p.EventID == eventID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (m memoryParticipations) Create(ctx context.Context, tx pgx.Tx, p *model.Participation) (*model.Participation, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.participations {
		if existing.EventID == p.EventID && existing.UserID == p.UserID {
			return nil, &duplicateError{}
		}
	}
	m.s.nextID++
	copied := *p
	copied.ID = m.s.nextID
	m.s.participations = append(m.s.participations, &copied)
	out := copied
	return &out, nil
}

func (m memoryParticipations) DeleteByEventAndUser(ctx context.Context, tx pgx.Tx, eventID uuid.UUID, userID int64) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	kept := m.s.participations[:0]
	for _, p := range m.s.participations {
		if !(p.EventID == eventID && p.UserID == userID) {
			kept = append(kept, p)
		}
	}
	m.s.participations = kept
	return nil
}

func (m memoryParticipations) DeleteByEventID(ctx context.Context, tx pgx.Tx, eventID uuid.UUID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var removed int64
	kept := m.s.participations[:0]
	for _, p := range m.s.participations {
		if p.EventID == eventID {
			removed++
			continue
		}
		kept = append(kept, p)
	}
	m.s.participations = kept
	return removed, nil
}

type duplicateError struct{}

func (e *duplicateError) Error() string {
	return "duplicate key value violates unique constraint"
}
