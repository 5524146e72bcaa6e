package core

import "github.com/duetapp/duet/internal/domain"

// Frame is a raw outbound payload, already encoded for the wire.
type Frame []byte

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// Sender is the broker's view of the transport layer: deliver an event to
// one connection or to everyone. Delivery is fire-and-forget; sending to an
// id that already went away is a silent no-op.
type Sender interface {
	To(id domain.ClientID, v any)
	Broadcast(v any)
}
