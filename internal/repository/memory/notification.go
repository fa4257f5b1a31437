package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/harborhr/hr-backend-go/internal/domain/notification"
)

type NotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*notification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{notifications: make(map[string]*notification.Notification)}
}

func (r *NotificationRepository) CreateBatch(_ context.Context, notifications []*notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notifications {
		stored := *n
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = time.Now()
		}
		r.notifications[stored.ID] = &stored
	}
	return nil
}

func (r *NotificationRepository) ListByRecipient(_ context.Context, recipientID string, unreadOnly bool, limit int) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*notification.Notification, 0)
	for _, n := range r.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		copied := *n
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *NotificationRepository) UnreadCount(_ context.Context, recipientID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, ids []string, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		n, ok := r.notifications[id]
		if !ok || n.RecipientID != recipientID || n.IsRead {
			continue
		}
		n.IsRead = true
		n.ReadAt = &now
	}
	return nil
}
