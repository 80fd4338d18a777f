package app

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wsecho/internal/config"
)

func startApp(t *testing.T) (string, context.CancelFunc, <-chan error) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := zerolog.Nop()
	application := New(config.Default().Server, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx, ln) }()
	t.Cleanup(cancel)

	return "ws://" + ln.Addr().String(), cancel, done
}

func TestServeEchoesAndShutsDown(t *testing.T) {
	url, cancel, done := startApp(t)

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte("Hello, server!")))
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "Response from server: Hello, server!", string(data))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	// The open session is torn down with the server.
	_, _, err = conn.Read(ctx)
	require.Error(t, err)
}

func TestRunAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.Default().Server
	cfg.Addr = ln.Addr().String()
	logger := zerolog.Nop()

	err = New(cfg, &logger).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "listen")
}
