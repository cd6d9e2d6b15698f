package events

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/QuiambaoMichael/safetap-backend/internal/observability"
)

// Observer is a live subscriber to concern events. It is owned exclusively
// by the Broadcaster: transports read from Events() and call Unsubscribe when
// the connection goes away.
type Observer struct {
	events    chan Event
	since     time.Time
	closeOnce sync.Once
}

// Events returns the delivery channel. It is closed on unsubscribe.
func (o *Observer) Events() <-chan Event {
	return o.events
}

// Since reports when the observer subscribed.
func (o *Observer) Since() time.Time {
	return o.since
}

func (o *Observer) close() {
	o.closeOnce.Do(func() {
		close(o.events)
	})
}

// Broadcaster maintains the set of currently-connected observers and fans
// committed events out to all of them. Delivery is best-effort: a send to an
// observer whose buffer is full is abandoned and the observer detached, so a
// stalled connection never blocks delivery to the others nor the transition
// that triggered the publish.
type Broadcaster struct {
	mu        sync.RWMutex
	observers map[*Observer]struct{}
	buffer    int
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewBroadcaster creates a broadcaster with the given per-observer buffer.
func NewBroadcaster(buffer int, logger *zap.Logger, metrics *observability.Metrics) *Broadcaster {
	if buffer <= 0 {
		buffer = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broadcaster{
		observers: make(map[*Observer]struct{}),
		buffer:    buffer,
		logger:    logger,
		metrics:   metrics,
	}
}

// Subscribe registers a new observer. No backlog of past events is replayed.
func (b *Broadcaster) Subscribe() *Observer {
	obs := &Observer{
		events: make(chan Event, b.buffer),
		since:  time.Now(),
	}
	b.mu.Lock()
	b.observers[obs] = struct{}{}
	count := len(b.observers)
	b.mu.Unlock()

	b.metrics.SetObservers(count)
	b.logger.Debug("observer subscribed", zap.Int("observers", count))
	return obs
}

// Unsubscribe removes an observer and closes its channel. Calling it twice,
// or with an observer that was already detached, is a no-op.
func (b *Broadcaster) Unsubscribe(obs *Observer) {
	if obs == nil {
		return
	}
	b.mu.Lock()
	_, ok := b.observers[obs]
	if ok {
		delete(b.observers, obs)
		// Closing under the lock keeps the close from interleaving with an
		// in-flight Publish send on the same channel.
		obs.close()
	}
	count := len(b.observers)
	b.mu.Unlock()

	if !ok {
		return
	}
	b.metrics.SetObservers(count)
	b.logger.Debug("observer unsubscribed", zap.Int("observers", count))
}

// Publish delivers the event to every currently-registered observer. It
// never blocks on a slow observer and never returns an error: by the time it
// runs the underlying transition has already committed.
func (b *Broadcaster) Publish(event Event) {
	b.mu.RLock()
	for obs := range b.observers {
		select {
		case obs.events <- event:
		default:
			// Buffer full: the observer cannot drain. Drop it rather than
			// queue unboundedly or stall the publish.
			b.metrics.RecordEventDropped()
			b.logger.Warn("dropping slow observer",
				zap.String("event_id", event.ID),
				zap.String("kind", string(event.Kind)))
			go b.Unsubscribe(obs)
		}
	}
	b.mu.RUnlock()
	b.metrics.RecordEventPublished()
}

// ObserverCount reports the current number of connected observers.
func (b *Broadcaster) ObserverCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.observers)
}

// Close detaches every observer, closing their channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for obs := range b.observers {
		obs.close()
	}
	b.observers = make(map[*Observer]struct{})
	b.mu.Unlock()

	b.metrics.SetObservers(0)
}
