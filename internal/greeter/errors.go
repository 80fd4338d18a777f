package greeter

import "errors"

var (
	// ErrConnect wraps any failure to reach the server or complete the handshake.
	ErrConnect = errors.New("connect")
	// ErrClosedBeforeReply means the connection ended before the reply arrived.
	ErrClosedBeforeReply = errors.New("connection closed before reply")
	// ErrUnexpectedMessage means the server answered with a non-text frame.
	ErrUnexpectedMessage = errors.New("unexpected non-text reply")
)
