package middleware

import (
	"log/slog"

	"termtalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// IdentityKey is the echo context key under which the authenticated
// identity is stored for downstream handlers.
const IdentityKey = "identity"

// AuthMiddleware guards routes behind a valid bearer token.
type AuthMiddleware struct {
	userUsecase usecase.UserUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(userUsecase usecase.UserUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{userUsecase: userUsecase, logger: logger}
}

// Authenticate validates the Authorization header and stores the
// resulting identity on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")

		identity, err := m.userUsecase.Authenticate(c.Request().Context(), authHeader)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(IdentityKey, identity)

		return next(c)
	}
}

// IdentityFrom extracts the authenticated identity stored by Authenticate.
func IdentityFrom(c echo.Context) (*usecase.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(*usecase.Identity)

	return identity, ok
}
