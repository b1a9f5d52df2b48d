// Package response holds the JSON shapes the HTTP API exposes.
package response

import (
	"termtalk/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// User is the public view of an account. The password hash never leaves
// the persistence layer.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Register is the body returned by a successful registration.
type Register struct {
	User User `json:"user"`
}

// Login is the body returned by a successful login.
type Login struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Me is the body returned by the authenticated profile endpoint.
type Me struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// Message is the public view of a chat message.
type Message struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Error is the uniform error body for every failed request.
type Error struct {
	Error string `json:"error"`
}

// NewUser maps a domain user to its public view.
func NewUser(u *entity.User) User {
	return User{ID: u.ID, Username: u.Username}
}

// NewMessages maps domain messages to their public views. It always
// returns a non-nil slice so the empty history serializes as [].
func NewMessages(msgs []entity.Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, Message{
			ID:        m.ID,
			Username:  m.Username,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}

	return out
}

// JSONError writes the uniform error body with the given status code.
func JSONError(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Error{Error: message})
}
