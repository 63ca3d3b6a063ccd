package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHubSubscribePublish(t *testing.T) {
	hub := NewHub("")

	id, ch := hub.Subscribe(TopicBookings())
	defer hub.Unsubscribe(TopicBookings(), id)

	hub.Publish(ChangeEvent{Topic: TopicBookings(), Table: "property_bookings", Action: "insert", RowID: 1})

	select {
	case ev := <-ch:
		assert.Equal(t, "insert", ev.Action)
		assert.Equal(t, uint(1), ev.RowID)
		assert.False(t, ev.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestHubTopicIsolation(t *testing.T) {
	hub := NewHub("")

	id, ch := hub.Subscribe(TopicBookingsByProperty(1))
	defer hub.Unsubscribe(TopicBookingsByProperty(1), id)

	hub.Publish(ChangeEvent{Topic: TopicBookingsByProperty(2), RowID: 9})

	select {
	case <-ch:
		t.Fatal("event leaked across topics")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub("")

	id, ch := hub.Subscribe(TopicBookings())
	hub.Unsubscribe(TopicBookings(), id)

	_, open := <-ch
	assert.False(t, open)

	// publishing to an empty topic is a no-op
	hub.Publish(ChangeEvent{Topic: TopicBookings(), RowID: 1})
}

// Publish must never block, even when a subscriber stopped draining.
func TestHubPublishNeverBlocks(t *testing.T) {
	hub := NewHub("")

	id, _ := hub.Subscribe(TopicBookings())
	defer hub.Unsubscribe(TopicBookings(), id)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(ChangeEvent{Topic: TopicBookings(), RowID: uint(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHubConcurrentSubscribers(t *testing.T) {
	hub := NewHub("")

	const subs = 10
	var wg sync.WaitGroup
	received := make(chan uint, subs)

	for i := 0; i < subs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ch := hub.Subscribe(TopicBookings())
			defer hub.Unsubscribe(TopicBookings(), id)
			ev := <-ch
			received <- ev.RowID
		}()
	}

	// give subscribers time to register before the one publish
	time.Sleep(50 * time.Millisecond)
	hub.Publish(ChangeEvent{Topic: TopicBookings(), RowID: 42})
	wg.Wait()
	close(received)

	count := 0
	for id := range received {
		assert.Equal(t, uint(42), id)
		count++
	}
	assert.Equal(t, subs, count)
}

func TestTopicHelpers(t *testing.T) {
	assert.Equal(t, "bookings", TopicBookings())
	assert.Equal(t, "bookings:property:7", TopicBookingsByProperty(7))
	assert.Equal(t, "bookings:email:a@b.c", TopicBookingsByEmail("a@b.c"))
	assert.Equal(t, "availability:7", TopicAvailability(7))
}
