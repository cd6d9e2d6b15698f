package events

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// relayConn is the slice of the Redis client the outbound path needs.
type relayConn interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Relay mirrors events across service instances through a Redis channel.
// Outgoing events are tagged with this instance's origin id and queued for a
// background forwarder, so Publish never waits on the network; the run loop
// re-injects events published by other instances into the local broadcaster
// and skips its own echoes. Like the broadcaster, the relay is best-effort:
// a full queue or a Redis failure is logged and dropped, never surfaced to
// the caller.
type Relay struct {
	client  *redis.Client
	conn    relayConn
	channel string
	origin  string
	local   *Broadcaster
	logger  *zap.Logger
	queue   chan Event
}

// NewRelay creates a relay bound to the given broadcaster. The buffer caps
// how many outbound events may be pending before new ones are dropped.
func NewRelay(client *redis.Client, channel string, buffer int, local *Broadcaster, logger *zap.Logger) *Relay {
	if buffer <= 0 {
		buffer = 64
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Relay{
		client:  client,
		conn:    client,
		channel: channel,
		origin:  uuid.NewString(),
		local:   local,
		logger:  logger,
		queue:   make(chan Event, buffer),
	}
}

// Publish enqueues a locally committed event for the background forwarder.
// It never blocks: when the queue is full the event is dropped.
func (r *Relay) Publish(event Event) {
	event.Origin = r.origin
	select {
	case r.queue <- event:
	default:
		r.logger.Warn("relay queue full, event dropped",
			zap.String("event_id", event.ID),
			zap.String("kind", string(event.Kind)),
		)
	}
}

// Run forwards queued events to Redis and consumes the Redis channel until
// the context is cancelled, feeding foreign events into the local
// broadcaster.
func (r *Relay) Run(ctx context.Context) error {
	go r.drain(ctx)

	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.inject([]byte(msg.Payload))
		}
	}
}

func (r *Relay) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-r.queue:
			r.forward(ctx, event)
		}
	}
}

func (r *Relay) forward(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("relay marshal failed", zap.Error(err))
		return
	}
	if err := r.conn.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Warn("relay publish failed", zap.Error(err))
	}
}

func (r *Relay) inject(payload []byte) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		r.logger.Warn("relay decode failed", zap.Error(err))
		return
	}
	if event.Origin == r.origin {
		return
	}
	r.local.Publish(event)
}
