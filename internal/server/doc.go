// Package server implements the WebSocket transport for the GoChat relay.
//
// The Hub owns the single event loop that serializes every connection event
// into the chat Dispatcher, and it implements chat.Groups so the dispatcher
// can address rooms without knowing about sockets. Clients run one read and
// one write pump each; the remaining files cover configuration, origin
// checks, routing, and HTTP server lifecycle.
package server
