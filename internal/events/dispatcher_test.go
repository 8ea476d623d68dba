package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []Event
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventUserRegistered,
		EntityID:  "user-1",
		Timestamp: time.Now(),
	}
	require.NoError(t, d.Publish(context.Background(), event))
	require.Len(t, seen, 2)
	assert.Equal(t, "user-1", seen[0].EntityID)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventFoodCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventFoodDeleted}))
	assert.False(t, called)
}

func TestFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventFoodDeleted, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	d.Subscribe(EventFoodDeleted, func(context.Context, Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventFoodDeleted}))
	assert.True(t, second)
}
