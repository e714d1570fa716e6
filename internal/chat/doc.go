// Package chat implements the room membership and broadcast fan-out core of
// the GoChat relay.
//
// The package knows nothing about sockets. A transport hands it connection
// events through a Dispatcher and receives outbound events through the Groups
// interface. All types in this package assume they are driven from a single
// goroutine; the transport's event loop is the serialization point.
package chat
