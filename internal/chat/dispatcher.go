package chat

import (
	"encoding/json"
	"log/slog"
	"strings"
)

type handlerFunc func(conn ConnID, data json.RawMessage)

// Dispatcher is the protocol state machine. It reacts to connection events,
// updates the Registry, and decides who receives what through Groups.
//
// Calls must be serialized by the caller; each call runs to completion.
type Dispatcher struct {
	registry  *Registry
	groups    Groups
	envelopes *Builder
	notices   *Notices
	logger    *slog.Logger
	handlers  map[string]handlerFunc
}

// NewDispatcher wires a dispatcher over registry, delivering through groups.
// A nil logger discards output.
func NewDispatcher(registry *Registry, groups Groups, envelopes *Builder, notices *Notices, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		registry:  registry,
		groups:    groups,
		envelopes: envelopes,
		notices:   notices,
		logger:    logger,
	}
	d.handlers = map[string]handlerFunc{
		EventEnterRoom: d.handleEnterRoom,
		EventMessage:   d.handleMessage,
		EventTyping:    d.handleTyping,
	}
	return d
}

// Registry returns the registry the dispatcher mutates.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Connect greets a new connection. The connection does not become a user
// until it enters a room.
func (d *Dispatcher) Connect(conn ConnID) {
	d.logger.Debug("connection opened", "conn", conn)
	d.groups.Unicast(conn, EventMessage, d.envelopes.Build(AdminName, d.notices.Welcome()))
}

// Handle routes an inbound event to its handler. Unknown events and payloads
// that do not decode are dropped.
func (d *Dispatcher) Handle(conn ConnID, in Inbound) {
	handler, ok := d.handlers[in.Event]
	if !ok {
		d.logger.Debug("dropping unknown event", "conn", conn, "event", in.Event)
		return
	}
	handler(conn, in.Data)
}

// EnterRoom moves conn into room under name, leaving its previous room if it
// had one. Re-entering the same room is a full leave and join. A join under
// the reserved Admin name is dropped.
func (d *Dispatcher) EnterRoom(conn ConnID, name, room string) {
	if isReservedName(name) {
		d.logger.Debug("dropping join under reserved name", "conn", conn, "name", name)
		return
	}
	previous, had := d.registry.Find(conn)
	if had {
		d.groups.Detach(conn, previous.Room)
	}
	if previous.InRoom() {
		d.groups.Broadcast(previous.Room, EventMessage, d.envelopes.Build(AdminName, d.notices.LeftRoom(name)))
	}

	user := d.registry.Upsert(conn, name, room)

	if previous.InRoom() {
		d.broadcastUserList(previous.Room)
	}

	d.groups.Broadcast(user.Room, EventMessage, d.envelopes.Build(AdminName, d.notices.JoinedRoom(name)), conn)
	d.groups.Unicast(conn, EventMessage, d.envelopes.Build(AdminName, d.notices.YouJoined()))

	// Attach only now so the joiner skips its own "joined" notice but is
	// included in the roster below.
	d.groups.Attach(conn, user.Room)

	d.broadcastUserList(user.Room)
	d.broadcastRoomList()

	d.logger.Info("user entered room", "conn", conn, "name", name, "room", room, "previous", previous.Room)
}

// Message relays text from conn to everyone in its room, including conn.
// It is dropped when conn is not in a room or name is the reserved Admin name.
func (d *Dispatcher) Message(conn ConnID, name, text string) {
	if isReservedName(name) {
		d.logger.Debug("dropping message under reserved name", "conn", conn, "name", name)
		return
	}
	user, ok := d.registry.Find(conn)
	if !ok || !user.InRoom() {
		d.logger.Debug("dropping message outside a room", "conn", conn)
		return
	}
	d.groups.Broadcast(user.Room, EventMessage, d.envelopes.Build(name, text))
}

// Typing tells the rest of conn's room that name is typing.
func (d *Dispatcher) Typing(conn ConnID, name string) {
	user, ok := d.registry.Find(conn)
	if !ok || !user.InRoom() {
		return
	}
	d.groups.Broadcast(user.Room, EventTyping, name, conn)
}

// Disconnect tears down conn. It is safe to call more than once.
func (d *Dispatcher) Disconnect(conn ConnID) {
	user, ok := d.registry.Find(conn)
	d.registry.Remove(conn)
	if !ok {
		d.logger.Debug("connection closed before entering a room", "conn", conn)
		return
	}

	d.groups.Detach(conn, user.Room)
	d.groups.Broadcast(user.Room, EventMessage, d.envelopes.Build(AdminName, d.notices.LeftChat(user.Name)), conn)
	d.broadcastUserList(user.Room)
	d.broadcastRoomList()

	d.logger.Info("user left chat", "conn", conn, "name", user.Name, "room", user.Room)
}

// isReservedName reports whether a client-supplied name would pass for a
// system notice.
func isReservedName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), AdminName)
}

func (d *Dispatcher) broadcastUserList(room string) {
	d.groups.Broadcast(room, EventUserList, UserList{Users: d.registry.OccupantsOf(room)})
}

func (d *Dispatcher) broadcastRoomList() {
	d.groups.BroadcastAll(EventRoomList, RoomList{Rooms: d.registry.ActiveRooms()})
}

func (d *Dispatcher) handleEnterRoom(conn ConnID, data json.RawMessage) {
	var p EnterRoom
	if !d.decode(conn, EventEnterRoom, data, &p) {
		return
	}
	d.EnterRoom(conn, p.Name, p.Room)
}

func (d *Dispatcher) handleMessage(conn ConnID, data json.RawMessage) {
	var p ChatMessage
	if !d.decode(conn, EventMessage, data, &p) {
		return
	}
	d.Message(conn, p.Name, p.Text)
}

func (d *Dispatcher) handleTyping(conn ConnID, data json.RawMessage) {
	var name string
	if !d.decode(conn, EventTyping, data, &name) {
		return
	}
	d.Typing(conn, name)
}

// decode unmarshals data into v. A missing payload leaves v at its zero value.
func (d *Dispatcher) decode(conn ConnID, event string, data json.RawMessage, v any) bool {
	if len(data) == 0 {
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		d.logger.Debug("dropping undecodable payload", "conn", conn, "event", event, "error", err)
		return false
	}
	return true
}
