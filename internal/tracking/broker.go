package tracking

import (
	"sync"
	"time"
)

// subscriberBufferSize is the channel buffer for each subscriber.
// Events are dropped if a subscriber falls this far behind.
const subscriberBufferSize = 16

// Event reports that an order moved to a new status.
type Event struct {
	OrderID string    `json:"order_id"`
	OID     string    `json:"oid"`
	Status  string    `json:"status"`
	At      time.Time `json:"at"`
}

// Broker fans out order events to subscribers, one topic per order id.
// It is safe for concurrent use.
//
// Closed topics are kept as markers so that a client subscribing after the
// order was delivered receives a closed channel instead of waiting forever.
type Broker struct {
	mu     sync.Mutex
	topics map[string]*topic
}

type topic struct {
	subs   map[int]chan Event
	nextID int
	closed bool
}

// NewBroker creates a new broker.
func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]*topic),
	}
}

// Subscribe returns a channel that receives events for orderID and an
// unsubscribe function. If the topic is already closed the returned channel
// is closed too.
func (b *Broker) Subscribe(orderID string) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[orderID]
	if !ok {
		t = &topic{subs: make(map[int]chan Event)}
		b.topics[orderID] = t
	}

	ch := make(chan Event, subscriberBufferSize)
	if t.closed {
		close(ch)
		return ch, func() {}
	}

	id := t.nextID
	t.nextID++
	t.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(t.subs, id)
	}
}

// Publish sends e to every subscriber of e.OrderID. Events are dropped for
// subscribers whose buffers are full.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[e.OrderID]
	if !ok || t.closed {
		return
	}

	for _, ch := range t.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close ends the topic for orderID. Subscriber channels are closed and
// future Subscribe calls return a closed channel.
func (b *Broker) Close(orderID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[orderID]
	if !ok {
		b.topics[orderID] = &topic{subs: make(map[int]chan Event), closed: true}
		return
	}

	t.closed = true
	for id, ch := range t.subs {
		close(ch)
		delete(t.subs, id)
	}
}

// Reopen clears the closed marker for orderID so that it accepts subscribers
// and events again. Open topics are left as they are.
func (b *Broker) Reopen(orderID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.topics[orderID]; ok && t.closed {
		delete(b.topics, orderID)
	}
}

// Forget drops the topic for orderID entirely, closing any subscribers.
// It is used when an order is deleted.
func (b *Broker) Forget(orderID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.topics[orderID]
	if !ok {
		return
	}
	for _, ch := range t.subs {
		if !t.closed {
			close(ch)
		}
	}
	delete(b.topics, orderID)
}
