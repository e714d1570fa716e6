// Package chat keeps the canonical user list in the Registry.
package chat

// Registry maps connection identities to users. It is the single source of
// truth for room membership; everything else derives from it.
//
// Registry is not safe for concurrent use.
type Registry struct {
	users []User
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Upsert records id as name in room. Any existing entry for id is removed
// first so the user moves to the end of the insertion order.
func (r *Registry) Upsert(id ConnID, name, room string) User {
	user := User{ID: id, Name: name, Room: room}
	r.Remove(id)
	r.users = append(r.users, user)
	return user
}

// Remove drops the entry for id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id ConnID) {
	kept := r.users[:0]
	for _, u := range r.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	clear(r.users[len(kept):])
	r.users = kept
}

// Find returns the user for id.
func (r *Registry) Find(id ConnID) (User, bool) {
	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	return len(r.users)
}

// Users returns a copy of all users in insertion order.
func (r *Registry) Users() []User {
	out := make([]User, len(r.users))
	copy(out, r.users)
	return out
}
