package chat

// OccupantsOf returns the users whose room is room, in insertion order.
// The result is a fresh slice and never nil.
func (r *Registry) OccupantsOf(room string) []User {
	occupants := make([]User, 0)
	for _, u := range r.users {
		if u.Room == room {
			occupants = append(occupants, u)
		}
	}
	return occupants
}

// ActiveRooms returns every room with at least one occupant. Rooms appear in
// the order they were first seen, but callers must not rely on it.
func (r *Registry) ActiveRooms() []string {
	seen := make(map[string]struct{}, len(r.users))
	rooms := make([]string, 0)
	for _, u := range r.users {
		if _, ok := seen[u.Room]; ok {
			continue
		}
		seen[u.Room] = struct{}{}
		rooms = append(rooms, u.Room)
	}
	return rooms
}
