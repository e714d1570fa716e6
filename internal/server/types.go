// Package server defines the wire frame exchanged with clients and small
// helpers shared by hub and client logic.
package server

import (
	"encoding/json"
	"strings"

	"github.com/Tyrowin/gochat-relay/internal/chat"
)

// Frame is the JSON envelope of every WebSocket message in both directions.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// encodeFrame renders an outbound event.
func encodeFrame(event string, payload any) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Data: payload})
}

// decodeFrame parses an inbound message into the dispatcher's event form.
func decodeFrame(raw []byte) (chat.Inbound, error) {
	var in chat.Inbound
	err := json.Unmarshal(raw, &in)
	return in, err
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
