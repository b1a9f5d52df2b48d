package ws

import (
	"encoding/json"

	"termtalk/internal/domain/entity"
	"termtalk/internal/errors"
	"termtalk/internal/usecase"
)

// Event names carried in the envelope. They are part of the wire contract
// with the frontend and must not change.
const (
	EventChatMessage = "chat message"
	EventOnlineUsers = "online users"
)

// Envelope is the frame format for every websocket message, in both
// directions: a name plus an event-specific payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// messagePayload is the wire form of a broadcast chat message.
type messagePayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

func encodeChatMessage(msg *entity.Message) ([]byte, error) {
	data, err := json.Marshal(messagePayload{
		ID:        msg.ID,
		Username:  msg.Username,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	frame, err := json.Marshal(Envelope{Event: EventChatMessage, Data: data})

	return frame, errors.WithStack(err)
}

func decodeMessagePayload(data json.RawMessage, out *usecase.IncomingMessage) error {
	return errors.WithStack(json.Unmarshal(data, out))
}

func encodeOnlineUsers(count int) ([]byte, error) {
	data, err := json.Marshal(count)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	frame, err := json.Marshal(Envelope{Event: EventOnlineUsers, Data: data})

	return frame, errors.WithStack(err)
}
