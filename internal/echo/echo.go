// Package echo holds the reply rule shared by the server transport and its tests.
package echo

// Label is prepended to every echoed message.
const Label = "Response from server: "

// Responder turns an inbound text message into its reply.
type Responder struct {
	label string
}

// NewResponder returns a responder using label, or Label when label is empty.
func NewResponder(label string) *Responder {
	if label == "" {
		label = Label
	}
	return &Responder{label: label}
}

// Label returns the prefix used for replies.
func (r *Responder) Label() string {
	return r.label
}

// Reply returns the label followed by msg. Every message is accepted as-is.
func (r *Responder) Reply(msg string) string {
	return r.label + msg
}
