package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/freshfold/freshfold/internal/adapter/push"
	"github.com/freshfold/freshfold/internal/domain/model"
)

// LaundryFacade exposes the subset of application functionality required by the dispatcher.
type LaundryFacade interface {
	NotificationsForDispatch(ctx context.Context, limit int) ([]model.Notification, error)
	MarkNotificationSent(ctx context.Context, notificationID int64) error
}

// NotificationDispatcher drains the queued notifications and delivers them
// through the push gateway concurrently.
type NotificationDispatcher struct {
	facade       LaundryFacade
	pusher       push.Client
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationDispatcher constructs the dispatcher worker pool.
func NewNotificationDispatcher(facade LaundryFacade, pusher push.Client, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *NotificationDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &NotificationDispatcher{
		facade:       facade,
		pusher:       pusher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Notification, batchSize*workers),
	}
}

// Start launches background processing.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}

	d.wg.Add(1)
	go d.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *NotificationDispatcher) dispatch(ctx context.Context) {
	defer d.wg.Done()
	defer close(d.jobs)
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.fetchAndDispatch(ctx)
		}
	}
}

func (d *NotificationDispatcher) fetchAndDispatch(ctx context.Context) {
	notifications, err := d.facade.NotificationsForDispatch(ctx, d.batchSize)
	if err != nil {
		d.logger.Error("fetch notifications for dispatch failed", slog.String("error", err.Error()))
		return
	}
	for _, n := range notifications {
		select {
		case <-ctx.Done():
			return
		case d.jobs <- n:
		}
	}
}

func (d *NotificationDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case notification, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handle(ctx, notification)
		}
	}
}

func (d *NotificationDispatcher) handle(ctx context.Context, n model.Notification) {
	// Users without a registered device still get the row marked: the
	// in-app channel already delivered it and there is nothing to retry.
	if n.PushToken != nil && *n.PushToken != "" {
		message := push.Message{
			To:    *n.PushToken,
			Sound: "default",
			Title: n.Title,
			Body:  n.Body,
			Data:  n.Data,
		}
		if err := d.pusher.Send(ctx, []push.Message{message}); err != nil {
			d.logger.Error("push delivery failed",
				slog.Int64("notification_id", n.ID),
				slog.Int64("user_id", n.TargetUserID),
				slog.String("error", err.Error()),
			)
			return
		}
	}

	if err := d.facade.MarkNotificationSent(ctx, n.ID); err != nil {
		d.logger.Error("mark notification sent failed", slog.Int64("notification_id", n.ID), slog.String("error", err.Error()))
	}
}
