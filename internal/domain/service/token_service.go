package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by a session token.
// A token binds a user ID and username for its whole lifetime; validity is
// determined purely by signature and expiry, with no server-side state.
type Claims struct {
	UserID   uuid.UUID
	Username string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed session token for the given identity.
	GenerateToken(userID uuid.UUID, username string) (string, error)

	// ValidateToken checks signature and expiry and returns the decoded claims.
	ValidateToken(tokenString string) (*Claims, error)
}
