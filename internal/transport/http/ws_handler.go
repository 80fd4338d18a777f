package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wsecho/internal/config"
	"github.com/vovakirdan/wsecho/internal/echo"
)

var errBinaryMessage = errors.New("binary messages are not supported")

// WSHandler upgrades HTTP connections and echoes every text message back to its sender.
type WSHandler struct {
	responder *echo.Responder
	readLimit int64
	active    atomic.Int64
	log       *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler. A non-positive readLimit means config.DefaultReadLimit.
func NewWSHandler(responder *echo.Responder, readLimit int64, logger *zerolog.Logger) *WSHandler {
	if readLimit <= 0 {
		readLimit = config.DefaultReadLimit
	}
	return &WSHandler{responder: responder, readLimit: readLimit, log: logger}
}

// Active returns the number of open sessions.
func (h *WSHandler) Active() int64 {
	return h.active.Load()
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Str("remote", r.RemoteAddr).Msg("ws accept error")
		return
	}
	defer conn.CloseNow()

	conn.SetReadLimit(h.readLimit)

	logger := h.log.With().
		Str("session_id", uuid.NewString()).
		Str("remote", r.RemoteAddr).
		Logger()

	h.active.Add(1)
	defer h.active.Add(-1)
	logger.Info().Msg("client connected")

	// A hijacked request's context is only cancelled by server shutdown.
	stop := context.AfterFunc(r.Context(), func() {
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	})
	defer stop()

	err = h.serve(context.WithoutCancel(r.Context()), conn, &logger)

	switch {
	case errors.Is(err, errBinaryMessage):
		logger.Warn().Msg("binary message rejected")
		_ = conn.Close(websocket.StatusUnsupportedData, "text messages only")
	case errors.Is(err, io.EOF), isNormalClose(err):
		logger.Info().Msg("client disconnected")
	case r.Context().Err() != nil:
		logger.Info().Msg("session closed by shutdown")
	default:
		logger.Warn().Err(err).Msg("ws connection closed with error")
		_ = conn.Close(websocket.StatusInternalError, "internal error")
	}
}

// serve reads and answers messages one at a time until the peer goes away.
func (h *WSHandler) serve(ctx context.Context, conn *websocket.Conn, logger *zerolog.Logger) error {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		if typ != websocket.MessageText {
			return errBinaryMessage
		}

		text := string(data)
		logger.Info().Str("text", text).Int("msg_len", len(data)).Msg("message from client")

		reply := h.responder.Reply(text)
		if err := conn.Write(ctx, websocket.MessageText, []byte(reply)); err != nil {
			return err
		}
		logger.Info().Str("reply", reply).Msg("reply sent")
	}
}

func isNormalClose(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway, websocket.StatusNoStatusRcvd:
		return true
	default:
		return false
	}
}
