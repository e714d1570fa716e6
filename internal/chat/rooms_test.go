package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccupantsOf(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", "Alice", "lobby")
	r.Upsert("b", "Bob", "games")
	r.Upsert("c", "Carol", "lobby")

	assert.Equal(t, []User{
		{ID: "a", Name: "Alice", Room: "lobby"},
		{ID: "c", Name: "Carol", Room: "lobby"},
	}, r.OccupantsOf("lobby"))
	assert.Empty(t, r.OccupantsOf("nowhere"))
	assert.NotNil(t, r.OccupantsOf("nowhere"))
}

func TestOccupantsOfTracksSwitchAndRemoval(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", "Alice", "lobby")
	assert.Contains(t, r.OccupantsOf("lobby"), User{ID: "a", Name: "Alice", Room: "lobby"})

	r.Upsert("a", "Alice", "games")
	assert.Empty(t, r.OccupantsOf("lobby"))
	assert.Len(t, r.OccupantsOf("games"), 1)

	r.Remove("a")
	assert.Empty(t, r.OccupantsOf("games"))
}

func TestActiveRooms(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.ActiveRooms())

	r.Upsert("a", "Alice", "lobby")
	r.Upsert("b", "Bob", "games")
	r.Upsert("c", "Carol", "lobby")
	assert.ElementsMatch(t, []string{"lobby", "games"}, r.ActiveRooms())

	r.Upsert("b", "Bob", "lobby")
	assert.Equal(t, []string{"lobby"}, r.ActiveRooms())

	r.Remove("a")
	r.Remove("b")
	r.Remove("c")
	assert.Empty(t, r.ActiveRooms())
}

func TestActiveRoomsMatchesOccupancy(t *testing.T) {
	r := NewRegistry()
	steps := []struct {
		id     ConnID
		room   string
		remove bool
	}{
		{id: "a", room: "lobby"},
		{id: "b", room: "games"},
		{id: "c", room: "music"},
		{id: "a", room: "games"},
		{id: "c", remove: true},
		{id: "b", room: "lobby"},
		{id: "a", remove: true},
	}

	for _, step := range steps {
		if step.remove {
			r.Remove(step.id)
		} else {
			r.Upsert(step.id, string(step.id), step.room)
		}

		active := r.ActiveRooms()
		for _, room := range active {
			assert.NotEmptyf(t, r.OccupantsOf(room), "room %q listed without occupants", room)
		}
		for _, u := range r.Users() {
			assert.Contains(t, active, u.Room)
		}
	}
}
