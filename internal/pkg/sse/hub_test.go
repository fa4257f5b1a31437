package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe("user-1")
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe("user-1")
	defer cleanup2()
	other, cleanupOther := hub.Subscribe("user-2")
	defer cleanupOther()

	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification", Data: "hello"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, "notification", event.Event)
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}

	select {
	case <-other:
		t.Fatal("event leaked to another user")
	default:
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("user-1")
	require.Equal(t, 1, hub.SubscriberCount("user-1"))

	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount("user-1"))

	// Publishing to a user with no subscribers is a no-op.
	hub.Publish("user-1", Event{UserID: "user-1", Event: "notification"})
}

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1")
	defer cleanup()

	// Channel capacity is 10; the overflow must not block the publisher.
	for i := 0; i < 25; i++ {
		hub.Publish("user-1", Event{UserID: "user-1", Event: "notification", Data: i})
	}

	assert.Len(t, ch, 10)
}
