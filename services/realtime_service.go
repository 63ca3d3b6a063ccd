package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ChangeEvent tells subscribers that a watched row changed. Payloads carry no
// row data on purpose: clients re-read the authoritative state on any event,
// so delivery only needs to be at-least-once, not ordered.
type ChangeEvent struct {
	Topic  string    `json:"topic"`
	Table  string    `json:"table"`
	Action string    `json:"action"` // insert | update | delete
	RowID  uint      `json:"row_id"`
	At     time.Time `json:"at"`

	// Origin identifies the publishing hub so the Redis bridge can drop
	// events that already fanned out locally.
	Origin string `json:"origin,omitempty"`
}

const redisEventChannel = "estate:events"

type subscriber struct {
	id string
	ch chan ChangeEvent
}

// Hub is the in-process change-notification fan-out. Publish never blocks:
// subscribers that cannot keep up miss the event and catch up on their next
// re-read.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]chan ChangeEvent
	origin string

	rdb    *redis.Client
	cancel context.CancelFunc
}

// NewHub builds the hub. When redisURL is non-empty, events are additionally
// bridged over Redis pub/sub so every running instance fans out to its own
// subscribers.
func NewHub(redisURL string) *Hub {
	h := &Hub{
		topics: make(map[string]map[string]chan ChangeEvent),
		origin: uuid.NewString(),
	}

	if redisURL != "" {
		h.rdb = redis.NewClient(&redis.Options{Addr: redisURL})
		ctx, cancel := context.WithCancel(context.Background())
		h.cancel = cancel
		go h.consumeRedis(ctx)
		log.Println("🔧 realtime hub bridged over redis at", redisURL)
	}

	return h
}

// Subscribe registers interest in a topic. The returned id must be passed to
// Unsubscribe when the consumer goes away, typically via defer.
func (h *Hub) Subscribe(topic string) (string, <-chan ChangeEvent) {
	sub := subscriber{id: uuid.NewString(), ch: make(chan ChangeEvent, 16)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[string]chan ChangeEvent)
	}
	h.topics[topic][sub.id] = sub.ch
	return sub.id, sub.ch
}

func (h *Hub) Unsubscribe(topic, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.topics[topic]
	if subs == nil {
		return
	}
	if ch, ok := subs[id]; ok {
		delete(subs, id)
		close(ch)
	}
	if len(subs) == 0 {
		delete(h.topics, topic)
	}
}

// Publish fans an event out to local subscribers of its topic and, when
// bridged, to other instances via Redis.
func (h *Hub) Publish(ev ChangeEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	ev.Origin = h.origin

	h.deliver(ev)

	if h.rdb != nil {
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Printf("warning: marshal change event: %v", err)
			return
		}
		if err := h.rdb.Publish(context.Background(), redisEventChannel, payload).Err(); err != nil {
			log.Printf("warning: redis publish failed: %v", err)
		}
	}
}

func (h *Hub) deliver(ev ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.topics[ev.Topic] {
		select {
		case ch <- ev:
		default:
			// slow subscriber; it re-reads on the next event anyway
		}
	}
}

func (h *Hub) consumeRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, redisEventChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var ev ChangeEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("warning: bad change event from redis: %v", err)
			continue
		}
		if ev.Origin == h.origin {
			continue
		}
		h.deliver(ev)
	}
}

// Close stops the Redis bridge. Local subscribers keep their channels until
// they unsubscribe.
func (h *Hub) Close() error {
	if h.cancel != nil {
		h.cancel()
	}
	if h.rdb != nil {
		return h.rdb.Close()
	}
	return nil
}

// Topic helpers shared by publishers and the SSE controller.

func TopicBookings() string { return "bookings" }

func TopicBookingsByProperty(propertyID uint) string {
	return fmt.Sprintf("bookings:property:%d", propertyID)
}

func TopicBookingsByEmail(email string) string {
	return "bookings:email:" + email
}

func TopicAvailability(propertyID uint) string {
	return fmt.Sprintf("availability:%d", propertyID)
}
