package repository

import (
	"context"

	"termtalk/internal/domain/entity"
)

// MessageRepository defines the operations on the append-only message log.
// Appends are durable before returning; the database assigns each message a
// strictly increasing ID which is the sole authoritative replay order.
type MessageRepository interface {
	// Append inserts a message at the end of the log and fills in the
	// assigned ID and creation time on the passed entity.
	Append(ctx context.Context, msg *entity.Message) error

	// ListAll returns every message in the log, ascending by ID.
	ListAll(ctx context.Context) ([]entity.Message, error)

	// ListAfter returns all messages with an ID greater than the given
	// watermark, ascending by ID. Used by clients to close the gap between
	// a history fetch and a live subscription.
	ListAfter(ctx context.Context, afterID int64) ([]entity.Message, error)
}
