// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"termtalk/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for credential persistence.
// The application layer depends on this interface, not the concrete implementation.
// There are no update or delete operations: credential records are immutable.
type UserRepository interface {
	// Create persists a new user. The store assigns the ID and rejects
	// duplicate usernames.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves a single user by their unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
