package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRelayConn struct {
	payloads [][]byte
	err      error
	block    chan struct{}
}

func (s *stubRelayConn) Publish(_ context.Context, _ string, message interface{}) *redis.IntCmd {
	if s.block != nil {
		<-s.block
	}
	s.payloads = append(s.payloads, message.([]byte))
	return redis.NewIntResult(1, s.err)
}

func newTestRelay(conn relayConn, buffer int, local *Broadcaster) *Relay {
	return &Relay{
		conn:    conn,
		channel: "test-events",
		origin:  "origin-a",
		local:   local,
		logger:  zap.NewNop(),
		queue:   make(chan Event, buffer),
	}
}

// A stalled Redis connection must not add its round-trip time to the
// transition that triggered the publish.
func TestRelayPublishDoesNotWaitOnStalledConnection(t *testing.T) {
	conn := &stubRelayConn{block: make(chan struct{})}
	relay := newTestRelay(conn, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relay.drain(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			relay.Publish(Event{ID: "stalled", Kind: EventConcernCreated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Publish blocked while the connection was stalled")
	}
	close(conn.block)
}

func TestRelayDropsWhenQueueFull(t *testing.T) {
	relay := newTestRelay(&stubRelayConn{}, 1, nil)

	relay.Publish(Event{ID: "first"})
	relay.Publish(Event{ID: "second"})

	require.Equal(t, "first", (<-relay.queue).ID)
	select {
	case ev := <-relay.queue:
		t.Fatalf("unexpected queued event %q", ev.ID)
	default:
	}
}

func TestRelayTagsOutboundEventsWithOrigin(t *testing.T) {
	conn := &stubRelayConn{}
	relay := newTestRelay(conn, 4, nil)

	relay.Publish(Event{ID: "e1", Kind: EventConcernCreated})
	relay.forward(context.Background(), <-relay.queue)

	require.Len(t, conn.payloads, 1)
	var got Event
	require.NoError(t, json.Unmarshal(conn.payloads[0], &got))
	require.Equal(t, "origin-a", got.Origin)
	require.Equal(t, "e1", got.ID)
	require.Equal(t, EventConcernCreated, got.Kind)
}

func TestRelayInjectSkipsOwnEcho(t *testing.T) {
	b := NewBroadcaster(4, nil, nil)
	defer b.Close()
	obs := b.Subscribe()

	relay := newTestRelay(&stubRelayConn{}, 4, b)

	own, err := json.Marshal(Event{ID: "own", Origin: "origin-a"})
	require.NoError(t, err)
	relay.inject(own)

	foreign, err := json.Marshal(Event{ID: "foreign", Origin: "origin-b", Kind: EventConcernResolved})
	require.NoError(t, err)
	relay.inject(foreign)

	select {
	case ev := <-obs.Events():
		require.Equal(t, "foreign", ev.ID)
		require.Equal(t, EventConcernResolved, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("foreign event was not delivered")
	}

	select {
	case ev := <-obs.Events():
		t.Fatalf("own echo %q delivered back to local observers", ev.ID)
	default:
	}
}

func TestRelayInjectDropsMalformedPayload(t *testing.T) {
	b := NewBroadcaster(1, nil, nil)
	defer b.Close()
	obs := b.Subscribe()

	relay := newTestRelay(&stubRelayConn{}, 1, b)
	relay.inject([]byte("{not json"))

	select {
	case ev := <-obs.Events():
		t.Fatalf("unexpected event %q from malformed payload", ev.ID)
	default:
	}
}

func TestRelayForwardSwallowsPublishFailure(t *testing.T) {
	conn := &stubRelayConn{err: errors.New("connection reset")}
	relay := newTestRelay(conn, 1, nil)

	relay.forward(context.Background(), Event{ID: "e1"})

	require.Len(t, conn.payloads, 1)
}
