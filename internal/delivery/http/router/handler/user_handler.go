// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"termtalk/internal/delivery/http/middleware"
	"termtalk/internal/delivery/http/response"
	domainerrors "termtalk/internal/domain/errors"
	"termtalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.JSONError(c, http.StatusBadRequest, "Username and password are required")
	}
	if err := c.Validate(&input); err != nil {
		return response.JSONError(c, http.StatusBadRequest, "Username and password are required")
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Register{User: response.NewUser(output.User)})
}

// Login handles the login request. Credential failures surface the same
// message regardless of which credential was wrong.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.JSONError(c, http.StatusBadRequest, "Username and password are required")
	}
	if err := c.Validate(&input); err != nil {
		return response.JSONError(c, http.StatusBadRequest, "Username and password are required")
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Login{
		Token: output.Token,
		User:  response.NewUser(output.User),
	})
}

// Me returns the profile of the authenticated user.
func (h *UserHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return domainerrors.ErrInvalidToken.WrapMessage("missing identity on request context")
	}

	user, err := h.uc.GetUser(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Me{
		Message: "You are authenticated",
		User:    response.NewUser(user),
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
