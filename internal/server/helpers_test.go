package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/cursorparty/internal/protocol"
)

const receiveTimeout = time.Second

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// idSequence hands out the given ids in order, then falls back to numbered ids.
func idSequence(ids ...string) func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		if next <= len(ids) {
			return ids[next-1]
		}
		return fmt.Sprintf("extra%d", next)
	}
}

// startHub runs a hub for the duration of the test.
func startHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()
	h := NewHub(newTestLogger(), opts...)
	go h.Run()
	t.Cleanup(func() { _ = h.Shutdown(time.Second) })
	return h
}

// connectClient registers a connection-less client and consumes its welcome.
func connectClient(t *testing.T, h *Hub) (*Client, map[string]any) {
	t.Helper()
	c := NewClient(nil, h, "127.0.0.1:0", *NewConfig())
	require.True(t, h.Connect(c))
	welcome := receive(t, c)
	require.Equal(t, "welcome", welcome["type"])
	return c, welcome
}

func deliverJSON(t *testing.T, h *Hub, c *Client, payload string) {
	t.Helper()
	msg, err := protocol.Parse([]byte(payload))
	require.NoError(t, err)
	require.True(t, h.Deliver(c, msg))
}

// receive returns the next frame queued for c, decoded.
func receive(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case data, ok := <-c.GetSendChan():
		require.True(t, ok, "send channel closed while waiting for a message")
		var msg map[string]any
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(receiveTimeout):
		require.FailNow(t, "timed out waiting for a message")
		return nil
	}
}

// expectClosed drains c and fails unless its send channel is closed.
func expectClosed(t *testing.T, c *Client) {
	t.Helper()
	deadline := time.After(receiveTimeout)
	for {
		select {
		case _, ok := <-c.GetSendChan():
			if !ok {
				return
			}
		case <-deadline:
			require.FailNow(t, "send channel was not closed")
		}
	}
}

// flush proves every event enqueued so far has been handled: the hub
// processes events in order, so once the marker firework from sender reaches
// observer, anything enqueued before it has already been applied.
func flush(t *testing.T, h *Hub, sender, observer *Client) {
	t.Helper()
	deliverJSON(t, h, sender, `{"type":"firework","x":1,"y":1}`)
	msg := receive(t, observer)
	require.Equal(t, "firework", msg["type"], "expected only the marker, got %v", msg)
}
