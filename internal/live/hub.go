// Package live delivers change notifications for the cart and favourites
// and turns them into streams of freshly loaded values.
package live

import "sync"

// Topic names a stream of changes.
type Topic string

const (
	TopicCart      Topic = "cart"
	TopicFavorites Topic = "favorites"
)

// Publisher announces that the data behind a topic changed.
type Publisher interface {
	Publish(topic Topic)
}

// Subscriber hands out subscriptions to topics.
type Subscriber interface {
	Subscribe(topic Topic) *Subscription
}

// Hub fans change signals out to in-process subscribers.
// Signals carry no payload; subscribers reload what they need.
type Hub struct {
	mu   sync.Mutex
	subs map[Topic]map[*Subscription]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[Topic]map[*Subscription]struct{}),
	}
}

// Publish signals every subscriber of topic. It never blocks: a subscriber
// that has not consumed its previous signal keeps a single pending one.
func (h *Hub) Publish(topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[topic] {
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a new subscription to topic.
func (h *Hub) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		ch:    make(chan struct{}, 1),
		hub:   h,
		topic: topic,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}

	return sub
}

// Subscribers returns the number of live subscriptions to topic.
func (h *Hub) Subscribers(topic Topic) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[topic])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.topic][sub]; !ok {
		return
	}
	delete(h.subs[sub.topic], sub)
	if len(h.subs[sub.topic]) == 0 {
		delete(h.subs, sub.topic)
	}
	close(sub.ch)
}

// Subscription receives change signals for one topic.
type Subscription struct {
	ch    chan struct{}
	hub   *Hub
	topic Topic
}

// Changes returns the signal channel. It is closed by Close.
func (s *Subscription) Changes() <-chan struct{} {
	return s.ch
}

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s)
}
