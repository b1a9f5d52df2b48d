package usecase

import (
	"context"

	"termtalk/internal/domain/entity"
)

// IncomingMessage is a raw chat-message event from a connected session.
// Username is advisory only; the broadcast path stamps messages with the
// authenticated identity of the sending session.
type IncomingMessage struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// ChatUsecase defines the message intake and history operations backing the
// realtime channel.
type ChatUsecase interface {
	// AcceptMessage timestamps and persists an incoming message and returns
	// the message to broadcast. Persistence is best-effort: on storage
	// failure the error is logged, and the message is still returned (with
	// a zero ID) so live delivery degrades gracefully instead of failing.
	AcceptMessage(ctx context.Context, senderUsername string, in *IncomingMessage) *entity.Message

	// History returns the full message log in canonical (ID ascending) order.
	History(ctx context.Context) ([]entity.Message, error)

	// HistoryAfter returns messages with IDs greater than the watermark,
	// letting clients deduplicate the history-fetch/subscribe boundary.
	HistoryAfter(ctx context.Context, afterID int64) ([]entity.Message, error)
}
