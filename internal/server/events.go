package server

import "github.com/Tyrowin/cursorparty/internal/protocol"

// Event is a connection lifecycle event handled by the hub's event loop.
// The set of implementations is closed.
type Event interface {
	event()
}

// Connected announces a freshly upgraded connection.
type Connected struct {
	Client *Client
}

// Received carries a parsed message read from a connection.
type Received struct {
	Client  *Client
	Message protocol.Inbound
}

// Disconnected announces that a connection closed or failed. Err is nil for
// an orderly close.
type Disconnected struct {
	Client *Client
	Err    error
}

func (Connected) event()    {}
func (Received) event()     {}
func (Disconnected) event() {}
