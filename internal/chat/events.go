package chat

import "encoding/json"

// Event names shared by inbound and outbound frames.
const (
	EventEnterRoom = "enterRoom"
	EventMessage   = "message"
	EventTyping    = "typing"
	EventUserList  = "userList"
	EventRoomList  = "roomList"
)

// Inbound is an event received from a connection.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EnterRoom is the payload of an enterRoom event.
type EnterRoom struct {
	Name string `json:"name"`
	Room string `json:"room"`
}

// ChatMessage is the payload of an inbound message event.
type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// UserList is the roster of one room.
type UserList struct {
	Users []User `json:"users"`
}

// RoomList is the set of active rooms.
type RoomList struct {
	Rooms []string `json:"rooms"`
}
