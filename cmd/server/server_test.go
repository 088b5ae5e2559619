package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskweb/internal/config"
)

func TestStartHTTPServerPropagatesBindFailure(t *testing.T) {
	// Occupy a port so the server's listen fails immediately
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	port := ln.Addr().(*net.TCPAddr).Port

	app := &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: port, LogLevel: "info"},
		},
		logger: slog.Default(),
	}

	err = app.startHTTPServer(context.Background(), http.NewServeMux())
	require.Error(t, err, "a bind failure must reach the caller so the process exits non-zero")
	assert.Contains(t, err.Error(), "address already in use")
}
