package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	"github.com/Tyrowin/gochat-relay/internal/server"
)

func main() {
	cfg, err := server.NewConfigFromEnv()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("starting GoChat relay", "env", cfg.Environment, "locale", cfg.Locale)

	relay := server.New(cfg, logger)
	relay.StartHub()

	httpServer := server.CreateServer(cfg.Addr(), relay.Routes())
	go func() {
		if err := relay.StartServer(httpServer); err != nil {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"relay": func(ctx context.Context) error {
				return stopRelay(ctx, relay, httpServer, cfg.ShutdownTimeout)
			},
		},
	)

	exitCode := <-wait
	logger.Info("relay exited", "code", exitCode)
	os.Exit(exitCode)
}

// stopRelay stops accepting HTTP requests first and then shuts the hub down,
// closing the WebSocket connections it still holds. The hub is stopped even
// when the HTTP shutdown fails.
func stopRelay(ctx context.Context, relay *server.Server, httpServer *http.Server, fallback time.Duration) error {
	httpErr := relay.ShutdownServer(ctx, httpServer)
	hubErr := relay.Hub().Shutdown(remaining(ctx, fallback))
	return errors.Join(httpErr, hubErr)
}

// remaining returns the time left before ctx expires, or fallback when ctx
// has no deadline.
func remaining(ctx context.Context, fallback time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	return time.Until(deadline)
}
