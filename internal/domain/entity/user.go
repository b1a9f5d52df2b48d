// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account: one credential record per username.
// The password hash never leaves the server; entity values returned to
// clients are reduced to (ID, Username) by the delivery layer.
type User struct {
	ID           uuid.UUID // The unique identifier for the account, assigned by the store on creation.
	Username     string    // Unique, case-sensitive login name. Immutable after registration.
	PasswordHash string    // bcrypt hash of the password. Never serialized or logged.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
