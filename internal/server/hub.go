// Package server coordinates participant registration, message dispatch, and
// connection cleanup for the presence server via the Hub type.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tyrowin/cursorparty/internal/protocol"
)

const eventBufferSize = 256

// Hub is the session coordinator. It owns the participant registry and runs
// a single event loop that applies every connect, message and disconnect in
// turn, so registry updates and the broadcasts describing them never
// interleave. Other goroutines only enqueue events or take read snapshots.
type Hub struct {
	log          *slog.Logger
	participants *registry
	events       chan Event
	mutex        sync.RWMutex
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}

	newID    func() string
	newColor func() string
	newName  func() string
}

// Option customizes a Hub.
type Option func(*Hub)

// WithIDGenerator replaces the participant id source.
func WithIDGenerator(fn func() string) Option {
	return func(h *Hub) { h.newID = fn }
}

// WithColorPicker replaces the participant color source.
func WithColorPicker(fn func() string) Option {
	return func(h *Hub) { h.newColor = fn }
}

// WithNameGenerator replaces the default display name source.
func WithNameGenerator(fn func() string) Option {
	return func(h *Hub) { h.newName = fn }
}

// NewHub creates a Hub with an empty registry. Call Run to start processing.
func NewHub(logger *slog.Logger, opts ...Option) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		log:          logger,
		participants: newRegistry(),
		events:       make(chan Event, eventBufferSize),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
		newID:        uuid.NewString,
		newColor:     protocol.RandomColor,
		newName:      protocol.DefaultName,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Connect hands a new connection to the hub. It reports false when the hub
// has already stopped.
func (h *Hub) Connect(c *Client) bool {
	return h.enqueue(Connected{Client: c})
}

// Deliver hands a parsed inbound message to the hub.
func (h *Hub) Deliver(c *Client, msg protocol.Inbound) bool {
	return h.enqueue(Received{Client: c, Message: msg})
}

// Disconnect reports that a connection closed. err is nil for a clean close.
// Repeated calls for the same client are harmless.
func (h *Hub) Disconnect(c *Client, err error) bool {
	return h.enqueue(Disconnected{Client: c, Err: err})
}

func (h *Hub) enqueue(ev Event) bool {
	select {
	case <-h.ctx.Done():
		return false
	default:
	}

	select {
	case h.events <- ev:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// Count returns the number of participants currently online.
func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.participants.len()
}

// Participant returns a copy of the participant with the given id.
func (h *Hub) Participant(id string) (Participant, bool) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	p, ok := h.participants.get(id)
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// Participants returns a copy of every online participant, in no particular order.
func (h *Hub) Participants() []Participant {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.participants.snapshot()
}

// Run starts the hub's event loop. It blocks until Shutdown is called, so it
// is normally started in its own goroutine.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return
		case ev := <-h.events:
			h.handle(ev)
		}
	}
}

func (h *Hub) handle(ev Event) {
	switch ev := ev.(type) {
	case Connected:
		h.handleConnect(ev.Client)
	case Received:
		h.handleMessage(ev.Client, ev.Message)
	case Disconnected:
		h.handleDisconnect(ev.Client, ev.Err)
	default:
		h.log.Error("Unhandled hub event", "event", ev)
	}
}

func (h *Hub) handleConnect(c *Client) {
	if c == nil {
		h.log.Warn("Received nil client registration; skipping")
		return
	}

	h.mutex.Lock()
	p := &Participant{
		ID:     h.uniqueID(),
		Name:   h.newName(),
		Color:  h.newColor(),
		client: c,
	}
	c.id = p.ID
	h.participants.add(p)
	count := h.participants.len()
	h.mutex.Unlock()

	h.log.Info("Participant joined",
		"user_id", p.ID, "name", p.Name, "remote_addr", c.addr, "online", count)

	h.unicast(c, protocol.NewWelcome(p.ID, p.Color, p.Name))
	h.broadcast(protocol.NewJoin(p.ID, p.Color, p.Name, count), c)

	h.startPumps(c)
}

// uniqueID must be called with the write lock held.
func (h *Hub) uniqueID() string {
	for {
		id := h.newID()
		if id != "" && !h.participants.contains(id) {
			return id
		}
		h.log.Warn("Generated participant id already in use; retrying", "user_id", id)
	}
}

func (h *Hub) startPumps(c *Client) {
	if c.conn == nil {
		return
	}

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		c.writePump()
	}()
	go func() {
		defer h.wg.Done()
		c.readPump()
	}()
}

func (h *Hub) handleMessage(c *Client, msg protocol.Inbound) {
	h.mutex.RLock()
	p, ok := h.participants.lookup(c)
	h.mutex.RUnlock()
	if !ok {
		return
	}

	switch m := msg.(type) {
	case protocol.Cursor:
		x, y := m.X.Clamped(), m.Y.Clamped()
		h.mutex.Lock()
		p.X, p.Y = x, y
		h.mutex.Unlock()
		h.broadcast(protocol.NewCursorMoved(p.ID, x, y, p.Color, p.Name), c)

	case protocol.Reaction:
		if !protocol.IsAllowedEmoji(m.Emoji) {
			h.log.Debug("Dropping reaction with unknown emoji", "user_id", p.ID, "emoji", m.Emoji)
			return
		}
		h.broadcast(protocol.NewReactionSent(p.ID, m.X.Clamped(), m.Y.Clamped(), m.Emoji, p.Name), c)

	case protocol.Firework:
		h.broadcast(protocol.NewFireworkLaunched(p.ID, m.X.Clamped(), m.Y.Clamped(), p.Name), c)

	case protocol.Rename:
		h.rename(p, m.Name)

	case protocol.PrivateMessage:
		h.sendPrivate(p, m)

	default:
		h.log.Warn("Dropping message of unhandled kind", "user_id", p.ID, "kind", msg.Kind())
	}
}

func (h *Hub) rename(p *Participant, requested string) {
	name := protocol.NormalizeName(requested)
	if err := protocol.ValidateName(name); err != nil {
		h.log.Info("Rejected name change", "user_id", p.ID, "error", err)
		return
	}

	h.mutex.Lock()
	oldName := p.Name
	p.Name = name
	h.mutex.Unlock()

	h.log.Info("Name changed", "user_id", p.ID, "old_name", oldName, "name", name)
	h.broadcast(protocol.NewRenamed(p.ID, name, oldName), nil)
}

// sendPrivate unicasts m to its target, which may be the sender itself.
// Unknown targets are dropped.
func (h *Hub) sendPrivate(from *Participant, m protocol.PrivateMessage) {
	h.mutex.RLock()
	target, ok := h.participants.get(m.TargetUserID)
	h.mutex.RUnlock()
	if !ok {
		h.log.Debug("Dropping private message for unknown participant",
			"user_id", from.ID, "target_user_id", m.TargetUserID)
		return
	}

	h.unicast(target.client, protocol.NewPrivateDelivery(m.Message))
}

func (h *Hub) handleDisconnect(c *Client, cause error) {
	h.mutex.Lock()
	p, ok := h.participants.lookup(c)
	if !ok {
		h.mutex.Unlock()
		return
	}
	h.participants.remove(p.ID)
	count := h.participants.len()
	h.mutex.Unlock()

	// The registry no longer references c, so nothing sends on it after this.
	close(c.send)

	if cause != nil {
		h.log.Warn("Participant connection failed", "user_id", p.ID, "remote_addr", c.addr, "error", cause)
	}
	h.log.Info("Participant left", "user_id", p.ID, "name", p.Name, "online", count)

	h.broadcast(protocol.NewLeave(p.ID, p.Name, count), nil)
}

// unicast sends msg to a single registered client.
func (h *Hub) unicast(c *Client, msg protocol.Outbound) {
	data, err := protocol.Encode(msg)
	if err != nil {
		h.log.Error("Error encoding message", "kind", msg.Kind(), "error", err)
		return
	}
	h.trySend(c, data)
}

// broadcast sends msg to every registered client except exclude, which may be nil.
func (h *Hub) broadcast(msg protocol.Outbound, exclude *Client) {
	data, err := protocol.Encode(msg)
	if err != nil {
		h.log.Error("Error encoding message", "kind", msg.Kind(), "error", err)
		return
	}

	h.mutex.RLock()
	targets := h.participants.clientsExcept(exclude)
	h.mutex.RUnlock()

	h.log.Debug("Broadcasting message", "kind", msg.Kind(), "recipients", len(targets))
	for _, c := range targets {
		h.trySend(c, data)
	}
}

// trySend queues data on c without blocking. Only the event loop sends and
// closes send channels, so a registered client's channel is always open.
func (h *Hub) trySend(c *Client, data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		h.log.Warn("Send buffer full; dropping message", "user_id", c.id, "remote_addr", c.addr)
		return false
	}
}

// shutdownClients closes every registered connection and any connection
// still waiting in the event queue.
func (h *Hub) shutdownClients() {
	h.log.Info("Shutting down all client connections...")

	h.mutex.Lock()
	clients := h.participants.clear()
	h.mutex.Unlock()

	for _, c := range clients {
		close(c.send)
		c.closeConnection()
	}

	pending := 0
	for {
		select {
		case ev := <-h.events:
			if connected, ok := ev.(Connected); ok && connected.Client != nil {
				connected.Client.closeConnection()
				pending++
			}
		default:
			h.log.Info("Closed client connections", "registered", len(clients), "pending", pending)
			return
		}
	}
}

// Shutdown stops the event loop and waits for all client goroutines to
// finish. It returns context.DeadlineExceeded when they do not finish within
// timeout. Run must have been started.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.log.Info("Initiating hub shutdown...")

	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.log.Info("Hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		h.log.Warn("Hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
