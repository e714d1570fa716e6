// Package server coordinates client registration, room fan-out, and
// connection cleanup for the GoChat relay via the Hub type.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Tyrowin/gochat-relay/internal/chat"
)

// inboundEvent is a decoded frame waiting for the hub loop.
type inboundEvent struct {
	client *Client
	event  chat.Inbound
}

// Hub owns every live client and runs the event loop that feeds the chat
// dispatcher. Registration, unregistration, and inbound frames are handled one
// at a time on the Run goroutine, so the registry and the delivery groups are
// never touched concurrently.
//
// Hub implements chat.Groups; those methods must only be called from the
// dispatcher while it runs on the hub loop.
type Hub struct {
	clients    map[chat.ConnID]*Client
	groups     map[string]map[chat.ConnID]struct{}
	dropped    []*Client
	inbound    chan inboundEvent
	register   chan *Client
	unregister chan *Client
	dispatcher *chat.Dispatcher
	cfg        Config
	root       *slog.Logger
	logger     *slog.Logger
	clientsMu  sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewHub creates a Hub with its own registry and dispatcher. The returned Hub
// is ready to manage WebSocket connections once Run is started.
func NewHub(cfg Config, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg = sanitizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		clients:    make(map[chat.ConnID]*Client),
		groups:     make(map[string]map[chat.ConnID]struct{}),
		inbound:    make(chan inboundEvent),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		cfg:        cfg,
		root:       logger,
		logger:     logger.With("component", "hub"),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	locale := chat.ParseLocale(cfg.Locale)
	h.dispatcher = chat.NewDispatcher(
		chat.NewRegistry(),
		h,
		chat.NewBuilder(locale),
		chat.NewNotices(locale),
		logger.With("component", "dispatcher"),
	)
	return h
}

// Register hands a new client to the hub. It returns false when the hub has
// shut down.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.ctx.Done():
		return false
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// Run starts the hub's main event loop. It should be called in a separate
// goroutine and returns after Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.shutdownClients()
			return

		case client := <-h.register:
			if client == nil {
				h.logger.Warn("received nil client registration; skipping")
				continue
			}
			h.addClient(client)
			h.startPumps(client)
			h.dispatcher.Connect(client.id)

		case client := <-h.unregister:
			if h.removeClient(client) {
				h.dispatcher.Disconnect(client.id)
			}

		case in := <-h.inbound:
			if _, ok := h.clients[in.client.id]; !ok {
				continue
			}
			h.dispatcher.Handle(in.client.id, in.event)
		}

		h.reapDropped()
	}
}

func (h *Hub) addClient(client *Client) {
	h.clientsMu.Lock()
	h.clients[client.id] = client
	clientCount := len(h.clients)
	h.clientsMu.Unlock()

	h.logger.Info("client registered", "conn", client.id, "addr", client.addr, "clients", clientCount)
}

func (h *Hub) startPumps(client *Client) {
	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		client.writePump()
	}()
	go func() {
		defer h.wg.Done()
		client.readPump()
	}()
}

// removeClient forgets client and closes its send channel. It reports false
// when the client was already gone.
func (h *Hub) removeClient(client *Client) bool {
	h.clientsMu.Lock()
	if current, ok := h.clients[client.id]; !ok || current != client {
		h.clientsMu.Unlock()
		return false
	}
	delete(h.clients, client.id)
	clientCount := len(h.clients)
	h.clientsMu.Unlock()

	for name, members := range h.groups {
		delete(members, client.id)
		if len(members) == 0 {
			delete(h.groups, name)
		}
	}
	close(client.send)

	h.logger.Info("client unregistered", "conn", client.id, "addr", client.addr, "clients", clientCount)
	return true
}

// reapDropped disconnects clients whose send buffers overflowed while the
// last event was handled. Their departure may overflow others, so it repeats
// until nothing is left.
func (h *Hub) reapDropped() {
	for len(h.dropped) > 0 {
		client := h.dropped[0]
		h.dropped = h.dropped[1:]
		if h.removeClient(client) {
			h.logger.Warn("client removed due to full send buffer", "conn", client.id, "addr", client.addr)
			h.dispatcher.Disconnect(client.id)
		}
	}
	h.dropped = nil
}

// send queues data for client without blocking.
func (h *Hub) send(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.dropped = append(h.dropped, client)
	}
}

func (h *Hub) encode(event string, payload any) ([]byte, bool) {
	data, err := encodeFrame(event, payload)
	if err != nil {
		h.logger.Error("failed to encode frame", "event", event, "error", err)
		return nil, false
	}
	return data, true
}

// Attach adds conn to the delivery group.
func (h *Hub) Attach(conn chat.ConnID, group string) {
	if _, ok := h.clients[conn]; !ok {
		return
	}
	members := h.groups[group]
	if members == nil {
		members = make(map[chat.ConnID]struct{})
		h.groups[group] = members
	}
	members[conn] = struct{}{}
}

// Detach removes conn from the delivery group.
func (h *Hub) Detach(conn chat.ConnID, group string) {
	members, ok := h.groups[group]
	if !ok {
		return
	}
	delete(members, conn)
	if len(members) == 0 {
		delete(h.groups, group)
	}
}

// Broadcast sends an event to every member of group except the listed
// connections.
func (h *Hub) Broadcast(group, event string, payload any, except ...chat.ConnID) {
	members := h.groups[group]
	if len(members) == 0 {
		return
	}
	data, ok := h.encode(event, payload)
	if !ok {
		return
	}

	targets := 0
	for conn := range members {
		if isExcluded(conn, except) {
			continue
		}
		if client, ok := h.clients[conn]; ok {
			h.send(client, data)
			targets++
		}
	}
	h.logger.Debug("broadcast to room", "room", group, "event", event, "targets", targets)
}

// BroadcastAll sends an event to every registered client.
func (h *Hub) BroadcastAll(event string, payload any) {
	data, ok := h.encode(event, payload)
	if !ok {
		return
	}
	for _, client := range h.clients {
		h.send(client, data)
	}
	h.logger.Debug("broadcast to all", "event", event, "targets", len(h.clients))
}

// Unicast sends an event to a single connection.
func (h *Hub) Unicast(conn chat.ConnID, event string, payload any) {
	client, ok := h.clients[conn]
	if !ok {
		return
	}
	if data, ok := h.encode(event, payload); ok {
		h.send(client, data)
	}
}

func isExcluded(conn chat.ConnID, except []chat.ConnID) bool {
	for _, e := range except {
		if e == conn {
			return true
		}
	}
	return false
}

// shutdownClients closes all active client connections.
func (h *Hub) shutdownClients() {
	h.logger.Info("shutting down all client connections")

	h.clientsMu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[chat.ConnID]*Client)
	h.clientsMu.Unlock()
	h.groups = make(map[string]map[chat.ConnID]struct{})

	for _, client := range clients {
		close(client.send)
		if client.conn != nil {
			if err := client.conn.Close(); err != nil && !isExpectedCloseError(err) {
				h.logger.Error("error closing client connection", "addr", client.addr, "error", err)
			}
		}
	}

	h.logger.Info("closed client connections", "count", len(clients))
}

// Shutdown initiates graceful shutdown of the hub and waits for all goroutines
// to complete. It returns context.DeadlineExceeded if client goroutines are
// still running when the timeout is reached.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.logger.Info("initiating hub shutdown")

	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.logger.Info("hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		h.logger.Warn("hub shutdown timeout reached, some goroutines may still be running")
		return context.DeadlineExceeded
	}
}
