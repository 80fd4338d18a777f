// Package greeter implements the one-shot greeting client: connect, send one
// text message, wait for exactly one reply, close.
package greeter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wsecho/internal/config"
)

// replyHeadroom leaves room for the server's label on top of the echoed text.
const replyHeadroom = 4 << 10

// Client performs a single greeting exchange per Greet call. There is no retry.
type Client struct {
	URL     string
	Timeout time.Duration
	log     *zerolog.Logger
}

// New builds a client from configuration. A nil logger disables logging.
func New(cfg config.ClientConfig, logger *zerolog.Logger) *Client {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{URL: cfg.URL, Timeout: cfg.Timeout, log: logger}
}

// Greet sends text and returns the server's reply.
func (c *Client) Greet(ctx context.Context, text string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	conn, _, err := websocket.Dial(ctx, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrConnect, c.URL, err)
	}
	defer conn.CloseNow()

	conn.SetReadLimit(max(config.DefaultReadLimit, int64(len(text))) + replyHeadroom)

	c.log.Debug().Str("url", c.URL).Msg("connected")

	if err := conn.Write(ctx, websocket.MessageText, []byte(text)); err != nil {
		return "", fmt.Errorf("send: %w", err)
	}
	c.log.Debug().Str("text", text).Msg("greeting sent")

	typ, data, err := conn.Read(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("receive: %w", ctxErr)
		}
		if websocket.CloseStatus(err) != -1 || errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %w", ErrClosedBeforeReply, err)
		}
		return "", fmt.Errorf("receive: %w", err)
	}
	if typ != websocket.MessageText {
		_ = conn.Close(websocket.StatusUnsupportedData, "text messages only")
		return "", ErrUnexpectedMessage
	}

	if err := conn.Close(websocket.StatusNormalClosure, "bye"); err != nil {
		c.log.Debug().Err(err).Msg("close handshake")
	}

	return string(data), nil
}
