package chat

// Groups is the delivery side of the transport. Implementations route
// outbound events to live connections and track which connections belong to
// which named delivery group. Chat rooms map one-to-one onto groups.
//
// Every method is fire-and-forget; delivery failures are the transport's
// concern.
type Groups interface {
	// Attach adds conn to group.
	Attach(conn ConnID, group string)
	// Detach removes conn from group. Detaching a non-member is a no-op.
	Detach(conn ConnID, group string)
	// Broadcast sends event to every member of group except the listed
	// connections.
	Broadcast(group, event string, payload any, except ...ConnID)
	// BroadcastAll sends event to every live connection.
	BroadcastAll(event string, payload any)
	// Unicast sends event to conn only.
	Unicast(conn ConnID, event string, payload any)
}
