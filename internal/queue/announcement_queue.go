package queue

import (
	"context"
	"time"

	"football-bot/internal/model"
	"football-bot/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.Announcement
	Ack  func()
	Nack func(requeue bool)
}

// AnnouncementQueue 群組廣播（新活動、賽前提醒）的非同步佇列
type AnnouncementQueue interface {
	Publish(ctx context.Context, announcement *model.Announcement) error
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

type MemoryQueueConfig struct {
	RetryDelay    time.Duration // 第 n 次重送前等待 n * RetryDelay
	MaxRetryCount int           // 同一筆最多投遞次數，超過即丟棄
}

func defaultMemoryQueueConfig() MemoryQueueConfig {
	return MemoryQueueConfig{
		RetryDelay:    2 * time.Second,
		MaxRetryCount: 5,
	}
}

type pending struct {
	announcement *model.Announcement
	attempts     int
}

type MemoryAnnouncementQueueImpl struct {
	ch  chan *pending
	cfg MemoryQueueConfig
}

func NewMemoryAnnouncementQueue(bufferSize int) AnnouncementQueue {
	return NewMemoryAnnouncementQueueWithConfig(bufferSize, nil)
}

// NewMemoryAnnouncementQueueWithConfig config 為 nil 或欄位為零時使用預設值
func NewMemoryAnnouncementQueueWithConfig(bufferSize int, config *MemoryQueueConfig) AnnouncementQueue {
	cfg := defaultMemoryQueueConfig()
	if config != nil {
		if config.RetryDelay > 0 {
			cfg.RetryDelay = config.RetryDelay
		}
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
	}
	return &MemoryAnnouncementQueueImpl{
		ch:  make(chan *pending, bufferSize),
		cfg: cfg,
	}
}

func (q *MemoryAnnouncementQueueImpl) Publish(ctx context.Context, announcement *model.Announcement) error {
	select {
	case q.ch <- &pending{announcement: announcement}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryAnnouncementQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case p, ok := <-q.ch:
				if !ok {
					return
				}
				p.attempts++

				d := Delivery{
					Data: p.announcement,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.retry(ctx, p)
						}
					},
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// retry 延遲後放回佇列；次數用完或 buffer 滿時丟棄
func (q *MemoryAnnouncementQueueImpl) retry(ctx context.Context, p *pending) {
	log := logger.WithComponent("mq").With(
		zap.String("announcement_id", p.announcement.ID),
		zap.Int("attempts", p.attempts),
	)
	if p.attempts >= q.cfg.MaxRetryCount {
		log.Warn("announcement retries exhausted, discarding")
		return
	}

	time.AfterFunc(time.Duration(p.attempts)*q.cfg.RetryDelay, func() {
		if ctx.Err() != nil {
			return
		}
		select {
		case q.ch <- p:
		default:
			log.Warn("announcement queue full, discarding retry")
		}
	})
}
