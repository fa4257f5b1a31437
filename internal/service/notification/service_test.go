package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/pkg/sse"
	"github.com/harborhr/hr-backend-go/internal/repository/memory"
)

func newTestService(t *testing.T, hub *sse.Hub) (notification.Service, *memory.NotificationRepository) {
	t.Helper()
	repo := memory.NewNotificationRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, hub, logger, Config{
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
	})
	t.Cleanup(svc.Close)
	return svc, repo
}

func TestPublishStoresAndStreams(t *testing.T) {
	hub := sse.NewHub()
	svc, _ := newTestService(t, hub)
	ctx := context.Background()

	events, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	svc.Publish(ctx, notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
		Message:     "Your leave has been approved.",
	})

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("expected SSE event after flush")
	}

	stored, err := svc.List(ctx, "emp-1", false, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, notification.TypeLeaveApproved, stored[0].Type)
	assert.False(t, stored[0].IsRead)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	hub := sse.NewHub()
	svc, _ := newTestService(t, hub)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		svc.Publish(ctx, notification.Notification{
			RecipientID: "emp-1",
			Type:        notification.TypeLeaveRejected,
			Title:       "Leave rejected",
		})
	}

	// Wait for the workers to flush.
	require.Eventually(t, func() bool {
		count, err := svc.UnreadCount(ctx, "emp-1")
		return err == nil && count == 3
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := svc.List(ctx, "emp-1", true, 0)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	require.NoError(t, svc.MarkRead(ctx, "emp-1", []string{stored[0].ID, stored[1].ID}))

	count, err := svc.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A different recipient cannot mark someone else's notifications.
	require.NoError(t, svc.MarkRead(ctx, "emp-2", []string{stored[2].ID}))
	count, err = svc.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCloseFlushesQueue(t *testing.T) {
	hub := sse.NewHub()
	repo := memory.NewNotificationRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(repo, hub, logger, Config{
		FlushInterval: time.Hour, // only Close can flush
		WorkerCount:   1,
	})

	ctx := context.Background()
	svc.Publish(ctx, notification.Notification{
		RecipientID: "emp-1",
		Type:        notification.TypePayrollPosted,
		Title:       "Payslip available",
	})

	svc.Close()

	count, err := repo.UnreadCount(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
