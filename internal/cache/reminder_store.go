package cache

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const reminderKey = "reminders:pending"

// Reminder 一則待發送的賽前提醒；FireAt 為真實的 UTC 時刻
type Reminder struct {
	EventID uuid.UUID
	FireAt  time.Time
}

type ReminderStore interface {
	// 排程：同一場活動只保留最後一次排程的時間
	Schedule(ctx context.Context, eventID uuid.UUID, fireAt time.Time) error
	// 取消：活動停用或改期時移除提醒，不存在時不視為錯誤
	Cancel(ctx context.Context, eventID uuid.UUID) error
	// 領取：取出並移除 FireAt <= now 的提醒 (Lua 腳本確保同一則只被領取一次)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error)
	// 列出尚未發送的提醒，依 FireAt 排序
	Pending(ctx context.Context) ([]Reminder, error)
}

type RedisReminderStoreImpl struct {
	client *redis.Client
	key    string
}

func NewRedisReminderStore(client *redis.Client) ReminderStore {
	return &RedisReminderStoreImpl{
		client: client,
		key:    reminderKey,
	}
}

func (s *RedisReminderStoreImpl) Schedule(ctx context.Context, eventID uuid.UUID, fireAt time.Time) error {
	return s.client.ZAdd(ctx, s.key, redis.Z{
		Score:  float64(fireAt.Unix()),
		Member: eventID.String(),
	}).Err()
}

func (s *RedisReminderStoreImpl) Cancel(ctx context.Context, eventID uuid.UUID) error {
	return s.client.ZRem(ctx, s.key, eventID.String()).Err()
}

var claimDueScript = redis.NewScript(`
	-- 1. 取得參數
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local limit = tonumber(ARGV[2])

	-- 2. 找出到期的提醒
	local due = redis.call('ZRANGEBYSCORE', key, '-inf', now, 'WITHSCORES', 'LIMIT', 0, limit)

	-- 3. 逐一移除，回傳 member 與 score
	for i = 1, #due, 2 do
		redis.call('ZREM', key, due[i])
	end

	return due
`)

func (s *RedisReminderStoreImpl) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error) {
	result, err := claimDueScript.Run(ctx, s.client, []string{s.key}, now.Unix(), limit).StringSlice()
	if err != nil {
		return nil, err
	}
	return parseMemberScores(result)
}

func (s *RedisReminderStoreImpl) Pending(ctx context.Context) ([]Reminder, error) {
	result, err := s.client.ZRangeWithScores(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	reminders := make([]Reminder, 0, len(result))
	for _, z := range result {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected reminder member %v", z.Member)
		}
		id, err := uuid.Parse(member)
		if err != nil {
			return nil, fmt.Errorf("invalid reminder member %q: %w", member, err)
		}
		reminders = append(reminders, Reminder{EventID: id, FireAt: time.Unix(int64(z.Score), 0).UTC()})
	}
	return reminders, nil
}

// parseMemberScores 解析 [member, score, member, score, ...]
func parseMemberScores(values []string) ([]Reminder, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("unexpected reply length %d", len(values))
	}

	reminders := make([]Reminder, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		id, err := uuid.Parse(values[i])
		if err != nil {
			return nil, fmt.Errorf("invalid reminder member %q: %w", values[i], err)
		}
		score, err := strconv.ParseFloat(values[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid reminder score %q: %w", values[i+1], err)
		}
		reminders = append(reminders, Reminder{EventID: id, FireAt: time.Unix(int64(score), 0).UTC()})
	}
	return reminders, nil
}

// MemoryReminderStoreImpl 不落地的提醒，程序重啟即遺失；Redis 關閉時使用
type MemoryReminderStoreImpl struct {
	mu      sync.Mutex
	pending map[uuid.UUID]time.Time
}

func NewMemoryReminderStore() ReminderStore {
	return &MemoryReminderStoreImpl{pending: make(map[uuid.UUID]time.Time)}
}

func (s *MemoryReminderStoreImpl) Schedule(ctx context.Context, eventID uuid.UUID, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[eventID] = fireAt.UTC().Truncate(time.Second)
	return nil
}

func (s *MemoryReminderStoreImpl) Cancel(ctx context.Context, eventID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, eventID)
	return nil
}

func (s *MemoryReminderStoreImpl) ClaimDue(ctx context.Context, now time.Time, limit int) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	due := make([]Reminder, 0)
	for id, at := range s.pending {
		if !at.After(now) {
			due = append(due, Reminder{EventID: id, FireAt: at})
		}
	}
	sortReminders(due)
	if len(due) > limit {
		due = due[:limit]
	}
	for _, r := range due {
		delete(s.pending, r.EventID)
	}
	return due, nil
}

func (s *MemoryReminderStoreImpl) Pending(ctx context.Context) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, 0, len(s.pending))
	for id, at := range s.pending {
		out = append(out, Reminder{EventID: id, FireAt: at})
	}
	sortReminders(out)
	return out, nil
}

func sortReminders(reminders []Reminder) {
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].FireAt.Equal(reminders[j].FireAt) {
			return reminders[i].EventID.String() < reminders[j].EventID.String()
		}
		return reminders[i].FireAt.Before(reminders[j].FireAt)
	})
}
