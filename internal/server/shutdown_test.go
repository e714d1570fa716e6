package server_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tyrowin/gochat-relay/internal/server"
	"github.com/Tyrowin/gochat-relay/internal/testutil"
)

// TestGracefulShutdown verifies that an idle hub stops promptly.
func TestGracefulShutdown(t *testing.T) {
	hub := server.NewHub(server.NewConfig(), nil)
	go hub.Run()

	assert.NoError(t, hub.Shutdown(5*time.Second))
}

// TestGracefulShutdownWithClients verifies that active connections are closed
// and their pumps exit when the hub shuts down.
func TestGracefulShutdownWithClients(t *testing.T) {
	relay := server.New(server.NewConfig(), nil)
	relay.StartHub()
	ts := httptest.NewServer(relay.Routes())
	defer ts.Close()

	url := testutil.WebSocketURL(ts.URL)
	peers := make([]*testutil.Peer, 0, 5)
	for i := 0; i < 5; i++ {
		p := testutil.Dial(t, url)
		p.WaitForText(t, "Welcome to chat app!", wait)
		peers = append(peers, p)
	}
	require.Eventually(t, func() bool { return relay.Hub().ClientCount() == 5 }, wait, 10*time.Millisecond)

	require.NoError(t, relay.Hub().Shutdown(5*time.Second))

	for i, p := range peers {
		assert.Truef(t, p.Closed(wait), "client %d still connected", i)
	}
	assert.Equal(t, 0, relay.Hub().ClientCount())
}

// TestShutdownServerStopsListening verifies the HTTP side of shutdown.
func TestShutdownServerStopsListening(t *testing.T) {
	relay := server.New(server.NewConfig(), nil)
	httpServer := server.CreateServer("127.0.0.1:0", relay.Routes())

	errc := make(chan error, 1)
	go func() { errc <- relay.StartServer(httpServer) }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, relay.ShutdownServer(ctx, httpServer))

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("StartServer did not return after shutdown")
	}
}
