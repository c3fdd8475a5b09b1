package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/freshfold/freshfold/internal/adapter/push"
	"github.com/freshfold/freshfold/internal/domain/model"
	testhelpers "github.com/freshfold/freshfold/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, timeout time.Duration, check func() bool) {
	t.Helper()
	deadline := time.After(timeout)
	for {
		if check() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestNewNotificationDispatcherDefaults(t *testing.T) {
	d := NewNotificationDispatcher(&testhelpers.DispatcherFacadeStub{}, &testhelpers.PushClientStub{}, time.Second, 0, 0, testLogger())
	if d.batchSize != 1 {
		t.Fatalf("expected batch size default to 1, got %d", d.batchSize)
	}
	if d.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", d.workers)
	}
}

func TestNotificationDispatcherDeliversPush(t *testing.T) {
	token := "ExponentPushToken[abc]"
	facade := &testhelpers.DispatcherFacadeStub{
		Batches: [][]model.Notification{{
			{ID: 1, Title: "Order update", Body: "Your order #5 is now washing", TargetUserID: 7, PushToken: &token},
		}},
	}
	pusher := &testhelpers.PushClientStub{}
	d := NewNotificationDispatcher(facade, pusher, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	waitFor(t, 500*time.Millisecond, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Marked) > 0
	})
	d.Stop()

	messages := pusher.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected one push message, got %d", len(messages))
	}
	if messages[0].To != token || messages[0].Title != "Order update" {
		t.Fatalf("unexpected message: %+v", messages[0])
	}
	if messages[0].Sound != "default" {
		t.Fatalf("expected default sound, got %q", messages[0].Sound)
	}

	facade.Lock()
	defer facade.Unlock()
	if len(facade.Marked) != 1 || facade.Marked[0] != 1 {
		t.Fatalf("expected notification marked sent, got %v", facade.Marked)
	}
}

func TestNotificationDispatcherMarksTokenlessRows(t *testing.T) {
	facade := &testhelpers.DispatcherFacadeStub{
		Batches: [][]model.Notification{{
			{ID: 2, Title: "Order update", Body: "Your order #5 is now ready", TargetUserID: 7},
		}},
	}
	pusher := &testhelpers.PushClientStub{}
	d := NewNotificationDispatcher(facade, pusher, 10*time.Millisecond, 1, 1, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	waitFor(t, 500*time.Millisecond, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Marked) > 0
	})
	d.Stop()

	if len(pusher.Messages()) != 0 {
		t.Fatalf("expected no push for tokenless row, got %d", len(pusher.Messages()))
	}
}

func TestNotificationDispatcherRetriesFailedPush(t *testing.T) {
	token := "ExponentPushToken[abc]"
	row := model.Notification{ID: 3, Title: "t", Body: "b", TargetUserID: 7, PushToken: &token}
	facade := &testhelpers.DispatcherFacadeStub{
		Batches: [][]model.Notification{{row}, {row}},
	}

	var calls int
	pusher := &testhelpers.PushClientStub{
		SendFn: func(ctx context.Context, messages []push.Message) error {
			calls++
			if calls == 1 {
				return errors.New("gateway unavailable")
			}
			return nil
		},
	}

	d := NewNotificationDispatcher(facade, pusher, 5*time.Millisecond, 1, 1, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Failed delivery leaves the row unmarked so the next poll picks it up.
	waitFor(t, time.Second, func() bool {
		facade.Lock()
		defer facade.Unlock()
		return len(facade.Marked) > 0
	})
	d.Stop()

	if calls < 2 {
		t.Fatalf("expected at least two delivery attempts, got %d", calls)
	}
}

func TestNotificationDispatcherStopIsIdempotent(t *testing.T) {
	d := NewNotificationDispatcher(&testhelpers.DispatcherFacadeStub{}, &testhelpers.PushClientStub{}, 10*time.Millisecond, 1, 2, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)
	d.Stop()
	d.Stop()
}
