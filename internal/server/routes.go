// Package server wires HTTP handlers into a ServeMux for the GoChat relay.
package server

import "net/http"

// Routes returns an HTTP ServeMux with the health check and WebSocket
// endpoints.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/ws", s.WebSocketHandler)
	return mux
}
