package entity

import "time"

// Message is one entry in the append-only chat log.
// The ID is assigned by the database on insert and defines the canonical
// ordering for replay; messages are never updated or deleted.
type Message struct {
	ID        int64     // Monotonically increasing identifier assigned by the message log.
	Username  string    // Display name of the sender, bound to the authenticated identity.
	Text      string    // Message body. Opaque to the server.
	Timestamp string    // Wall-clock time of receipt, formatted by the server for display.
	CreatedAt time.Time // Row creation time.
}
