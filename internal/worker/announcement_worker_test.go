package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"football-bot/internal/model"
	"football-bot/internal/queue"
	serviceMocks "football-bot/internal/service/mocks"
	"football-bot/internal/worker"
	apperrors "football-bot/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeDeliveries 回傳一個只投遞一筆的 channel，並記錄 Ack / Nack
func fakeDeliveries(a *model.Announcement) (<-chan queue.Delivery, chan string) {
	out := make(chan queue.Delivery, 1)
	result := make(chan string, 1)
	out <- queue.Delivery{
		Data: a,
		Ack:  func() { result <- "ack" },
		Nack: func(requeue bool) {
			if requeue {
				result <- "requeue"
				return
			}
			result <- "discard"
		},
	}
	close(out)
	return out, result
}

type stubQueue struct {
	ch <-chan queue.Delivery
}

func (q stubQueue) Publish(ctx context.Context, a *model.Announcement) error { return nil }

func (q stubQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) { return q.ch, nil }

func TestAnnouncementWorker_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		deliver error
		want    string
	}{
		{"Success - ack", nil, "ack"},
		{"NotFound - discard", apperrors.ErrEventNotFound, "discard"},
		{"Transient - requeue", errors.New("telegram timeout"), "requeue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			a := model.NewAnnouncement(model.AnnouncementReminder, uuid.New(), -100)
			ch, result := fakeDeliveries(a)

			svc := serviceMocks.NewMockAnnouncementService(t)
			svc.EXPECT().Deliver(mock.Anything, a).Return(tt.deliver).Once()

			w := worker.NewAnnouncementWorker(svc, stubQueue{ch: ch})
			require.NoError(t, w.Start(ctx))

			select {
			case got := <-result:
				require.Equal(t, tt.want, got)
			case <-ctx.Done():
				t.Fatal("超時！Worker 沒有在時間內處理公告")
			}
			w.Wait()
		})
	}
}

func TestAnnouncementWorker_MemoryQueue(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryAnnouncementQueue(10)
	delivered := make(chan uuid.UUID, 1)

	svc := serviceMocks.NewMockAnnouncementService(t)
	svc.EXPECT().Deliver(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		delivered <- args.Get(1).(*model.Announcement).EventID
	}).Return(nil).Once()

	w := worker.NewAnnouncementWorker(svc, q)
	require.NoError(t, w.Start(ctx))

	id := uuid.New()
	require.NoError(t, q.Publish(ctx, model.NewAnnouncement(model.AnnouncementNewEvent, id, -100)))

	select {
	case got := <-delivered:
		require.Equal(t, id, got)
	case <-ctx.Done():
		t.Fatal("超時！Worker 沒有在時間內處理公告")
	}

	cancel()
	w.Wait()
}

func TestAnnouncementWorker_FailingDeliveryIsBounded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q := queue.NewMemoryAnnouncementQueueWithConfig(10, &queue.MemoryQueueConfig{RetryDelay: 5 * time.Millisecond, MaxRetryCount: 3})

	var mu sync.Mutex
	attempts := 0
	svc := serviceMocks.NewMockAnnouncementService(t)
	svc.EXPECT().Deliver(mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		attempts++
		mu.Unlock()
	}).Return(errors.New("Too Many Requests: retry after 5"))

	w := worker.NewAnnouncementWorker(svc, q)
	require.NoError(t, w.Start(ctx))
	require.NoError(t, q.Publish(ctx, model.NewAnnouncement(model.AnnouncementReminder, uuid.New(), -100)))

	// 3 次投遞最多等待 5ms + 10ms，留足餘裕
	time.Sleep(300 * time.Millisecond)
	cancel()
	w.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 3, attempts)
}
