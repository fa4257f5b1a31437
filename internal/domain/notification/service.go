package notification

import "context"

// Publisher is the producer side used by other services. Queueing is
// best-effort: a full queue or storage failure is logged by the
// implementation and never propagated to the caller's transaction.
type Publisher interface {
	Publish(ctx context.Context, n Notification)
}

type Service interface {
	Publisher
	List(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]*Notification, error)
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	MarkRead(ctx context.Context, recipientID string, ids []string) error
	// Close drains the queue and stops the background workers.
	Close()
}
