package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestWithOrigin(host, origin string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://"+host+"/ws", http.NoBody)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestOriginPolicyAllowList(t *testing.T) {
	cfg := NewConfig()
	cfg.AllowedOrigins = []string{"http://localhost:5500", "HTTP://Example.COM", "not-a-url"}
	p := newOriginPolicy(cfg, slog.New(slog.DiscardHandler))

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "listed origin", origin: "http://localhost:5500", want: true},
		{name: "case insensitive", origin: "http://example.com", want: true},
		{name: "path ignored", origin: "http://example.com/chat", want: true},
		{name: "other port", origin: "http://localhost:5501", want: false},
		{name: "other scheme", origin: "https://localhost:5500", want: false},
		{name: "missing header", origin: "", want: false},
		{name: "invalid entry never matches", origin: "not-a-url", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.check(requestWithOrigin("relay.local", tt.origin)))
		})
	}
}

func TestOriginPolicyWildcard(t *testing.T) {
	cfg := NewConfig()
	cfg.AllowedOrigins = []string{"*"}
	p := newOriginPolicy(cfg, slog.New(slog.DiscardHandler))

	assert.True(t, p.check(requestWithOrigin("relay.local", "https://anywhere.example")))
	assert.False(t, p.check(requestWithOrigin("relay.local", "")))
}

func TestOriginPolicyProductionIsSameOrigin(t *testing.T) {
	cfg := NewConfig()
	cfg.Environment = "production"
	cfg.AllowedOrigins = []string{"*"}
	p := newOriginPolicy(cfg, slog.New(slog.DiscardHandler))

	assert.True(t, p.check(requestWithOrigin("chat.example.com", "https://chat.example.com")))
	assert.True(t, p.check(requestWithOrigin("chat.example.com:8443", "https://CHAT.example.com:8443")))
	assert.False(t, p.check(requestWithOrigin("chat.example.com", "http://localhost:5500")))
	assert.False(t, p.check(requestWithOrigin("chat.example.com", "")))
}
