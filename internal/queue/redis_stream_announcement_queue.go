package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"football-bot/internal/model"
	"football-bot/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 公告 stream 的每筆 entry 只記活動 id 與公告種類；訊息內容在送出時才依活動現況渲染，
// 重複投遞只會再送一次同樣的內容。
const (
	StreamKey          = "announcements:stream"
	ConsumerGroupName  = "announcers"
	ConsumerNamePrefix = "announcer"

	announcementField = "announcement"
	eventIDField      = "event_id"
	kindField         = "kind"
	batchSize         = 10
)

// RedisStreamConfig 公告重試節奏；nil 或零值欄位套用預設
type RedisStreamConfig struct {
	// 閒置超過此時間的未確認公告由 XAUTOCLAIM 領回重送
	ClaimMinIdleTime time.Duration
	// 同一則公告最多投遞次數，超過就 ack 掉不再送
	MaxRetryCount int
	// 等待新公告的 XREADGROUP 阻塞時間
	ReadGroupBlockTime time.Duration
}

func (c *RedisStreamConfig) withDefaults() RedisStreamConfig {
	out := RedisStreamConfig{
		ClaimMinIdleTime:   10 * time.Second,
		MaxRetryCount:      5,
		ReadGroupBlockTime: 2 * time.Second,
	}
	if c == nil {
		return out
	}
	if c.ClaimMinIdleTime > 0 {
		out.ClaimMinIdleTime = c.ClaimMinIdleTime
	}
	if c.MaxRetryCount > 0 {
		out.MaxRetryCount = c.MaxRetryCount
	}
	if c.ReadGroupBlockTime > 0 {
		out.ReadGroupBlockTime = c.ReadGroupBlockTime
	}
	return out
}

type announcementStream struct {
	client   *redis.Client
	consumer string
	cfg      RedisStreamConfig
	log      *zap.Logger
}

// NewRedisStreamAnnouncementQueue 多個 bot 實例共用 announcers 群組，每則公告只會被其中一個送出
func NewRedisStreamAnnouncementQueue(ctx context.Context, client *redis.Client, consumerID string, config *RedisStreamConfig) (AnnouncementQueue, error) {
	if consumerID == "" {
		consumerID = uuid.NewString()
	}
	q := &announcementStream{
		client:   client,
		consumer: ConsumerNamePrefix + ":" + consumerID,
		cfg:      config.withDefaults(),
		log:      logger.WithComponent("mq"),
	}

	err := client.XGroupCreateMkStream(ctx, StreamKey, ConsumerGroupName, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("create announcer group: %w", err)
	}
	return q, nil
}

func (q *announcementStream) Publish(ctx context.Context, announcement *model.Announcement) error {
	payload, err := json.Marshal(announcement)
	if err != nil {
		return fmt.Errorf("encode announcement: %w", err)
	}
	// event_id 和 kind 只是方便用 XRANGE 檢查，讀取時以 payload 為準
	err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		Values: map[string]interface{}{
			announcementField: string(payload),
			eventIDField:      announcement.EventID.String(),
			kindField:         string(announcement.Kind),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("append announcement: %w", err)
	}
	return nil
}

// Subscribe 同時讀新公告與領回逾時的公告，兩者都停止後關閉 channel
func (q *announcementStream) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		q.consumeNew(ctx, out)
	}()
	go func() {
		defer wg.Done()
		q.reclaimStale(ctx, out)
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	return out, nil
}

func (q *announcementStream) consumeNew(ctx context.Context, out chan<- Delivery) {
	for ctx.Err() == nil {
		streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			Streams:  []string{StreamKey, ">"},
			Count:    batchSize,
			Block:    q.cfg.ReadGroupBlockTime,
		}).Result()

		switch {
		case errors.Is(err, redis.Nil):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			q.log.Error("read announcements failed", zap.Error(err))
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
			}
			continue
		}

		for _, stream := range streams {
			if !q.forward(ctx, out, stream.Messages) {
				return
			}
		}
	}
}

// reclaimStale 領回被 Nack(requeue) 或 consumer 中途掛掉而閒置的公告
func (q *announcementStream) reclaimStale(ctx context.Context, out chan<- Delivery) {
	ticker := time.NewTicker(q.cfg.ClaimMinIdleTime)
	defer ticker.Stop()
	cursor := "0-0"

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		msgs, next, err := q.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   StreamKey,
			Group:    ConsumerGroupName,
			Consumer: q.consumer,
			MinIdle:  q.cfg.ClaimMinIdleTime,
			Start:    cursor,
			Count:    batchSize,
		}).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			if ctx.Err() == nil {
				q.log.Error("reclaim announcements failed", zap.Error(err))
			}
			continue
		}
		cursor = next
		if cursor == "" {
			cursor = "0-0"
		}

		if !q.forward(ctx, out, q.dropExhausted(ctx, msgs)) {
			return
		}
	}
}

// dropExhausted XAUTOCLAIM 已把這次領取算進投遞次數
func (q *announcementStream) dropExhausted(ctx context.Context, msgs []redis.XMessage) []redis.XMessage {
	kept := msgs[:0]
	for _, msg := range msgs {
		deliveries, err := q.deliveryCount(ctx, msg.ID)
		if err != nil {
			q.log.Warn("read announcement delivery count failed", zap.String("message_id", msg.ID), zap.Error(err))
			kept = append(kept, msg)
			continue
		}
		if deliveries > int64(q.cfg.MaxRetryCount) {
			q.discard(ctx, msg.ID, "announcement retries exhausted, discarding",
				zap.Int64("deliveries", deliveries), zap.Int("max_retries", q.cfg.MaxRetryCount))
			continue
		}
		kept = append(kept, msg)
	}
	return kept
}

func (q *announcementStream) deliveryCount(ctx context.Context, id string) (int64, error) {
	pending, err := q.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: StreamKey,
		Group:  ConsumerGroupName,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(pending) == 0) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return pending[0].RetryCount, nil
}

// forward 回傳 false 表示 ctx 已取消
func (q *announcementStream) forward(ctx context.Context, out chan<- Delivery, msgs []redis.XMessage) bool {
	for _, msg := range msgs {
		announcement, err := decodeAnnouncement(msg)
		if err != nil {
			q.discard(ctx, msg.ID, "undecodable announcement, discarding", zap.Error(err))
			continue
		}
		select {
		case out <- q.delivery(ctx, msg.ID, announcement):
		case <-ctx.Done():
			return false
		}
	}
	return true
}

func decodeAnnouncement(msg redis.XMessage) (*model.Announcement, error) {
	raw, ok := msg.Values[announcementField].(string)
	if !ok {
		return nil, fmt.Errorf("missing %q field", announcementField)
	}
	var announcement model.Announcement
	if err := json.Unmarshal([]byte(raw), &announcement); err != nil {
		return nil, err
	}
	if announcement.EventID == uuid.Nil {
		return nil, errors.New("announcement has no event id")
	}
	return &announcement, nil
}

func (q *announcementStream) delivery(ctx context.Context, id string, announcement *model.Announcement) Delivery {
	log := q.log.With(
		zap.String("message_id", id),
		zap.String("event_id", announcement.EventID.String()),
		zap.String("kind", string(announcement.Kind)),
	)
	return Delivery{
		Data: announcement,
		Ack: func() {
			if err := q.ack(ctx, id); err != nil {
				log.Error("ack announcement failed", zap.Error(err))
			}
		},
		Nack: func(requeue bool) {
			if requeue {
				// 留在 pending list 等 reclaimStale
				log.Info("announcement deferred", zap.Duration("retry_after", q.cfg.ClaimMinIdleTime))
				return
			}
			if err := q.ack(ctx, id); err != nil {
				log.Error("drop announcement failed", zap.Error(err))
			}
		},
	}
}

func (q *announcementStream) discard(ctx context.Context, id, reason string, fields ...zap.Field) {
	q.log.Warn(reason, append(fields, zap.String("message_id", id))...)
	if err := q.ack(ctx, id); err != nil {
		q.log.Error("ack discarded announcement failed", zap.String("message_id", id), zap.Error(err))
	}
}

// ack 在 Subscribe 的 ctx 取消後仍要能確認已送出的公告
func (q *announcementStream) ack(ctx context.Context, id string) error {
	return q.client.XAck(context.WithoutCancel(ctx), StreamKey, ConsumerGroupName, id).Err()
}
