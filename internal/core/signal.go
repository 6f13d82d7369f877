package core

// Frame is an encoded signal message ready for the wire.
type Frame []byte

// SessionID identifies one live transport session. Assigned on accept,
// opaque, stable until the transport closes.
type SessionID string

// SignalConnection abstracts the messaging transport of one client.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	// TrySend enqueues a frame without blocking. It fails when the peer's
	// send buffer is full or the connection is closed; callers treat both
	// as a best-effort drop.
	TrySend(Frame) error
	Close()
}
