package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryUpsertReplacesExistingEntry(t *testing.T) {
	r := NewRegistry()

	r.Upsert("a", "Alice", "lobby")
	r.Upsert("b", "Bob", "lobby")
	user := r.Upsert("a", "Alice", "games")

	assert.Equal(t, User{ID: "a", Name: "Alice", Room: "games"}, user)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []User{
		{ID: "b", Name: "Bob", Room: "lobby"},
		{ID: "a", Name: "Alice", Room: "games"},
	}, r.Users())
}

func TestRegistryAcceptsEmptyStrings(t *testing.T) {
	r := NewRegistry()

	user := r.Upsert("a", "", "")

	found, ok := r.Find("a")
	require.True(t, ok)
	assert.Equal(t, user, found)
	assert.False(t, found.InRoom())
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", "Alice", "lobby")
	r.Upsert("b", "Bob", "lobby")

	r.Remove("a")
	r.Remove("a")
	r.Remove("missing")

	_, ok := r.Find("a")
	assert.False(t, ok)
	assert.Equal(t, []User{{ID: "b", Name: "Bob", Room: "lobby"}}, r.Users())
}

func TestRegistryFindUnknown(t *testing.T) {
	r := NewRegistry()

	user, ok := r.Find("nobody")

	assert.False(t, ok)
	assert.Equal(t, User{}, user)
}

func TestRegistryUsersReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Upsert("a", "Alice", "lobby")

	users := r.Users()
	users[0].Name = "Mallory"

	found, _ := r.Find("a")
	assert.Equal(t, "Alice", found.Name)
}

func TestRegistryAtMostOneEntryPerID(t *testing.T) {
	r := NewRegistry()
	ids := []ConnID{"a", "b", "c"}
	rooms := []string{"lobby", "games", "", "lobby", "music"}

	for i := 0; i < 50; i++ {
		id := ids[i%len(ids)]
		r.Upsert(id, "user", rooms[i%len(rooms)])

		seen := map[ConnID]int{}
		for _, u := range r.Users() {
			seen[u.ID]++
		}
		for id, n := range seen {
			require.Equalf(t, 1, n, "connection %s has %d entries", id, n)
		}
	}
	assert.Equal(t, len(ids), r.Len())
}
