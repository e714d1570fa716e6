package chat

// AdminName is the sender used for every system-generated notice.
const AdminName = "Admin"

// ConnID identifies a live connection. The transport assigns it and never
// reuses it.
type ConnID string

// User is a connection that has entered a room.
type User struct {
	ID   ConnID `json:"id"`
	Name string `json:"name"`
	Room string `json:"room"`
}

// InRoom reports whether the user is attached to a named room. An empty room
// string counts as no room.
func (u User) InRoom() bool {
	return u.Room != ""
}
