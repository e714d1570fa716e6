// Package server ties the hub, origin policy, and HTTP handlers together.
package server

import (
	"log/slog"

	"github.com/gorilla/websocket"
)

// Server is one relay instance: a hub plus the HTTP handlers that feed it.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// New builds a relay from cfg. The hub is created but not started; call
// StartHub before serving requests.
func New(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg = sanitizeConfig(cfg)
	origins := newOriginPolicy(cfg, logger.With("component", "origin"))

	return &Server{
		hub:      NewHub(cfg, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.check,
		},
		logger: logger.With("component", "http"),
	}
}

// Hub returns the hub for shutdown coordination.
func (s *Server) Hub() *Hub {
	return s.hub
}

