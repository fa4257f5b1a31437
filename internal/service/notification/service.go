package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harborhr/hr-backend-go/internal/domain/notification"
	"github.com/harborhr/hr-backend-go/internal/pkg/sse"
)

// Config tunes the background insert workers.
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 5 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type service struct {
	repo   notification.Repository
	hub    *sse.Hub
	logger *slog.Logger
	config Config

	queue  chan notification.Notification
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewService starts the background workers that drain the queue into
// batched inserts and push each stored notification to the recipient's open
// SSE streams.
func NewService(repo notification.Repository, hub *sse.Hub, logger *slog.Logger, cfg Config) notification.Service {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		repo:   repo,
		hub:    hub,
		logger: logger,
		config: cfg,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	batch := make([]*notification.Notification, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.repo.CreateBatch(ctx, batch); err != nil {
			s.logger.Error("notification batch insert failed", "worker", id, "count", len(batch), "error", err)
		} else {
			for _, n := range batch {
				s.hub.Publish(n.RecipientID, sse.Event{
					UserID: n.RecipientID,
					Event:  "notification",
					Data:   n,
				})
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case n := <-s.queue:
			batch = append(batch, &n)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
			// Drain whatever is still queued before the final flush.
			for {
				select {
				case n := <-s.queue:
					batch = append(batch, &n)
					if len(batch) >= s.config.BatchSize {
						flush()
					}
					continue
				default:
				}
				break
			}
			flush()
			return
		}
	}
}

// Publish queues a notification. Delivery is best-effort: callers never see
// an error, a full queue falls back to a synchronous insert, and a failed
// insert is only logged.
func (s *service) Publish(ctx context.Context, n notification.Notification) {
	n.ID = uuid.New().String()
	n.IsRead = false
	n.CreatedAt = time.Now()

	select {
	case s.queue <- n:
	default:
		if err := s.repo.CreateBatch(ctx, []*notification.Notification{&n}); err != nil {
			s.logger.Error("notification insert failed", "recipient_id", n.RecipientID, "type", n.Type, "error", err)
			return
		}
		s.hub.Publish(n.RecipientID, sse.Event{UserID: n.RecipientID, Event: "notification", Data: &n})
	}
}

func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool, limit int) ([]*notification.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByRecipient(ctx, recipientID, unreadOnly, limit)
}

func (s *service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.UnreadCount(ctx, recipientID)
}

func (s *service) MarkRead(ctx context.Context, recipientID string, ids []string) error {
	return s.repo.MarkRead(ctx, ids, recipientID)
}

// Close flushes pending notifications and stops the workers.
func (s *service) Close() {
	close(s.stopCh)
	s.wg.Wait()
}
