// Package testutil provides helpers shared by the relay's HTTP and WebSocket
// tests.
//
// Peer wraps a client WebSocket connection with a background reader so tests
// can wait for specific events with a timeout without poisoning the
// connection on a read deadline.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/gochat-relay/internal/chat"
)

// DefaultOrigin is the Origin header sent by Dial.
const DefaultOrigin = "http://localhost:5500"

// Frame is an inbound frame as seen by a test client.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Peer is a test-side WebSocket client.
type Peer struct {
	Conn   *websocket.Conn
	frames chan Frame
}

// WebSocketURL converts an httptest server URL into its /ws endpoint.
func WebSocketURL(serverURL string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
}

// DialOrigin opens a WebSocket connection with the given Origin header.
func DialOrigin(url, origin string) (*websocket.Conn, *http.Response, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 5 * time.Second,
	}

	headers := http.Header{}
	if origin != "" {
		headers.Set("Origin", origin)
	}

	conn, resp, err := dialer.Dial(url, headers)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return conn, resp, err
}

// Dial connects a Peer to url and closes it when the test ends.
func Dial(t *testing.T, url string) *Peer {
	t.Helper()

	conn, _, err := DialOrigin(url, DefaultOrigin)
	require.NoError(t, err, "dial %s", url)

	p := &Peer{
		Conn:   conn,
		frames: make(chan Frame, 256),
	}
	go p.readLoop()
	t.Cleanup(func() { _ = p.Conn.Close() })
	return p
}

func (p *Peer) readLoop() {
	defer close(p.frames)
	for {
		_, raw, err := p.Conn.ReadMessage()
		if err != nil {
			return
		}
		for _, line := range bytes.Split(raw, []byte{'\n'}) {
			var f Frame
			if err := json.Unmarshal(line, &f); err == nil {
				p.frames <- f
			}
		}
	}
}

// Send writes an event frame.
func (p *Peer) Send(event string, data any) error {
	return p.Conn.WriteJSON(map[string]any{"event": event, "data": data})
}

// MustSend writes an event frame and fails the test on error.
func (p *Peer) MustSend(t *testing.T, event string, data any) {
	t.Helper()
	require.NoError(t, p.Send(event, data))
}

// Next returns the next frame, or false if none arrives within timeout or the
// connection closed.
func (p *Peer) Next(timeout time.Duration) (Frame, bool) {
	select {
	case f, ok := <-p.frames:
		return f, ok
	case <-time.After(timeout):
		return Frame{}, false
	}
}

// WaitFor skips frames until one with event arrives and returns its data.
func (p *Peer) WaitFor(t *testing.T, event string, timeout time.Duration) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		left := time.Until(deadline)
		if left <= 0 {
			require.Failf(t, "timed out", "no %q event within %s", event, timeout)
			return nil
		}
		f, ok := p.Next(left)
		if !ok {
			require.Failf(t, "no frame", "connection ended before %q event", event)
			return nil
		}
		if f.Event == event {
			return f.Data
		}
	}
}

// WaitForText skips frames until a message envelope with text arrives.
func (p *Peer) WaitForText(t *testing.T, text string, timeout time.Duration) chat.Envelope {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		data := p.WaitFor(t, chat.EventMessage, time.Until(deadline))
		var env chat.Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		if env.Text == text {
			return env
		}
	}
}

// WaitForUserList returns the next userList roster.
func (p *Peer) WaitForUserList(t *testing.T, timeout time.Duration) []chat.User {
	t.Helper()
	var list chat.UserList
	require.NoError(t, json.Unmarshal(p.WaitFor(t, chat.EventUserList, timeout), &list))
	return list.Users
}

// WaitForRoomList returns the next roomList.
func (p *Peer) WaitForRoomList(t *testing.T, timeout time.Duration) []string {
	t.Helper()
	var list chat.RoomList
	require.NoError(t, json.Unmarshal(p.WaitFor(t, chat.EventRoomList, timeout), &list))
	return list.Rooms
}

// ExpectNothing fails if any frame other than the ignored events arrives
// within d.
func (p *Peer) ExpectNothing(t *testing.T, d time.Duration, ignore ...string) {
	t.Helper()
	deadline := time.Now().Add(d)
	for {
		left := time.Until(deadline)
		if left <= 0 {
			return
		}
		f, ok := p.Next(left)
		if !ok {
			return
		}
		ignored := false
		for _, e := range ignore {
			if f.Event == e {
				ignored = true
			}
		}
		if !ignored {
			require.Failf(t, "unexpected frame", "got %q: %s", f.Event, string(f.Data))
		}
	}
}

// Closed reports whether the server ended the connection within timeout.
func (p *Peer) Closed(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case _, ok := <-p.frames:
			if !ok {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

// CloseWebSocket sends a normal close frame and closes the connection.
func (p *Peer) CloseWebSocket() error {
	err := p.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		return err
	}
	return p.Conn.Close()
}

// MakeRequest executes an HTTP request with a 5-second timeout.
func MakeRequest(t *testing.T, method, url string) *http.Response {
	t.Helper()

	client := &http.Client{
		Timeout: 5 * time.Second,
	}

	req, err := http.NewRequest(method, url, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}
