package worker

import (
	"context"
	"sync"

	"football-bot/internal/queue"
	"football-bot/internal/service"
	"football-bot/pkg/logger"

	"go.uber.org/zap"
)

type AnnouncementWorker interface {
	// 訂閱公告佇列並開始送出
	Start(ctx context.Context) error
	// 等待目前的投遞處理完畢（ctx 取消之後）
	Wait()
}

type AnnouncementWorkerImpl struct {
	service service.AnnouncementService
	queue   queue.AnnouncementQueue
	wg      sync.WaitGroup
}

func NewAnnouncementWorker(service service.AnnouncementService, queue queue.AnnouncementQueue) AnnouncementWorker {
	return &AnnouncementWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *AnnouncementWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		log := logger.WithComponent("worker")

		for msg := range msgs {
			err := w.service.Deliver(ctx, msg.Data)
			switch {
			case err == nil:
				msg.Ack()
			case service.IsPermanent(err):
				// 活動已不存在，重試也沒用
				log.Warn("drop announcement", zap.String("announcement_id", msg.Data.ID), zap.Error(err))
				msg.Nack(false)
			default:
				log.Error("deliver announcement failed, will retry", zap.String("announcement_id", msg.Data.ID), zap.Error(err))
				msg.Nack(true)
			}
		}
	}()
	return nil
}

func (w *AnnouncementWorkerImpl) Wait() {
	w.wg.Wait()
}
