// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"termtalk/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the session token issued after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// Identity is the decoded payload of a verified session token.
type Identity struct {
	UserID   string
	Username string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Authenticate verifies a raw "Bearer <token>" header value and returns
	// the identity bound into the token. All failure modes (missing header,
	// malformed scheme, bad signature, expiry) surface the same
	// invalid-token error.
	Authenticate(ctx context.Context, bearerHeader string) (*Identity, error)

	// GetUser loads the account behind a verified identity.
	GetUser(ctx context.Context, identity *Identity) (*entity.User, error)
}
