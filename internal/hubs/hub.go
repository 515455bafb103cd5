package hubs

import (
	"fmt"
	"sync"

	"access-analytics/internal/events"
	"access-analytics/internal/shared/loggers"
	"access-analytics/internal/shared/ulid"
)

// Subscriber is one live observer of a topic. It owns a bounded delivery
// channel; the hub never blocks on it. A subscriber that repeatedly fails to
// drain is forcibly unsubscribed and must reconnect and resynchronize by
// reading current aggregates through the cache manager.
type Subscriber struct {
	ID    string
	Topic string

	ch chan events.Notification

	// overflow strikes, guarded by the hub mutex. Reset by any clean
	// send, so only a persistently slow consumer accumulates strikes.
	strikes int
}

// Receive returns the delivery channel. It is closed on unsubscribe.
func (s *Subscriber) Receive() <-chan events.Notification {
	return s.ch
}

// Hub fans committed-batch notifications out to live subscribers. Publish is
// fire-and-forget: enqueue on every current subscriber's channel without
// waiting for delivery. One slow subscriber never stalls the publisher or
// other subscribers; its own oldest undelivered message is dropped instead
// (live dashboards favor freshness over completeness).
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[string]*Subscriber

	buffer            int
	overflowThreshold int

	logger loggers.Logger
}

func NewHub(buffer, overflowThreshold int, logger loggers.Logger) *Hub {
	topics := make(map[string]map[string]*Subscriber)
	for _, topic := range []string{events.TopicStatsUpdate, events.TopicAlert} {
		topics[topic] = make(map[string]*Subscriber)
	}
	return &Hub{
		topics:            topics,
		buffer:            buffer,
		overflowThreshold: overflowThreshold,
		logger:            logger,
	}
}

// Subscribe registers a new subscriber on a topic.
func (h *Hub) Subscribe(topic string) (*Subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.topics[topic]
	if !ok {
		return nil, fmt.Errorf("unknown topic %q", topic)
	}

	sub := &Subscriber{
		ID:    ulid.NewULID(),
		Topic: topic,
		ch:    make(chan events.Notification, h.buffer),
	}
	subscribers[sub.ID] = sub
	metricActiveSubscribers.Inc()

	h.logger.Debug().
		Str(loggers.FieldTopic, topic).
		Str(loggers.FieldSubscriberID, sub.ID).
		Msg("subscriber registered")
	return sub, nil
}

// Unsubscribe removes a subscriber and closes its channel. Idempotent.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// Publish broadcasts to every current subscriber of the topic. Publishing
// to a topic with zero subscribers is a no-op, not an error.
func (h *Hub) Publish(topic string, notification events.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subscribers, ok := h.topics[topic]
	if !ok {
		return
	}
	metricPublishedTotal.WithLabelValues(topic).Inc()

	for _, sub := range subscribers {
		if h.trySendLocked(sub, notification) {
			sub.strikes = 0
			continue
		}

		sub.strikes++
		metricDroppedTotal.WithLabelValues(topic).Inc()

		if sub.strikes >= h.overflowThreshold {
			h.logger.Warn().
				Str(loggers.FieldTopic, topic).
				Str(loggers.FieldSubscriberID, sub.ID).
				Msg("subscriber repeatedly overflowed, force unsubscribing")
			metricForceUnsubscribedTotal.Inc()
			h.removeLocked(sub)
		}
	}
}

// ActiveSubscribers returns the current subscriber count across topics.
func (h *Hub) ActiveSubscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	total := 0
	for _, subscribers := range h.topics {
		total += len(subscribers)
	}
	return total
}

// Close force-unsubscribes everyone, closing their channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, subscribers := range h.topics {
		for _, sub := range subscribers {
			h.removeLocked(sub)
		}
	}
}

// trySendLocked enqueues without blocking. On a full channel it drops the
// subscriber's oldest undelivered message to make room; other subscribers
// are untouched. Returns false when a drop was needed.
func (h *Hub) trySendLocked(sub *Subscriber, notification events.Notification) bool {
	select {
	case sub.ch <- notification:
		return true
	default:
	}

	// Full: drop oldest, then enqueue the fresh message.
	select {
	case <-sub.ch:
	default:
	}
	select {
	case sub.ch <- notification:
	default:
		// Only reachable if the consumer raced a drain in between;
		// the message is dropped either way.
	}
	return false
}

func (h *Hub) removeLocked(sub *Subscriber) {
	subscribers, ok := h.topics[sub.Topic]
	if !ok {
		return
	}
	if _, exists := subscribers[sub.ID]; !exists {
		return
	}
	delete(subscribers, sub.ID)
	close(sub.ch)
	metricActiveSubscribers.Dec()
}
