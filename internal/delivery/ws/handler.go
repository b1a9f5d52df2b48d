package ws

import (
	"log/slog"
	"net/http"

	"termtalk/config"
	"termtalk/internal/usecase"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Handler authenticates and upgrades websocket requests, then hands the
// connection to the hub.
type Handler struct {
	hub         *Hub
	userUsecase usecase.UserUsecase
	cfg         *config.Config
	logger      *slog.Logger
	upgrader    websocket.Upgrader
}

// NewHandler is the constructor for Handler, injected by Fx.
func NewHandler(hub *Hub, userUsecase usecase.UserUsecase, cfg *config.Config, logger *slog.Logger) *Handler {
	h := &Handler{
		hub:         hub,
		userUsecase: userUsecase,
		cfg:         cfg,
		logger:      logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// Serve authenticates the request and upgrades it to a websocket session.
// Browsers cannot set headers on websocket requests, so the token is also
// accepted as a "token" query parameter.
func (h *Handler) Serve(c echo.Context) error {
	bearer := c.Request().Header.Get("Authorization")
	if bearer == "" {
		if token := c.QueryParam("token"); token != "" {
			bearer = "Bearer " + token
		}
	}

	identity, err := h.userUsecase.Authenticate(c.Request().Context(), bearer)
	if err != nil {
		return errors.WithStack(err)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		h.logger.Warn("Websocket upgrade failed",
			slog.String("username", identity.Username),
			slog.String("error", err.Error()),
		)

		return nil
	}

	conn.SetReadLimit(h.cfg.Chat.MaxMessageSize)

	client := newClient(h.hub, conn, h.logger, identity.Username, h.cfg.Chat.SendBufferSize)
	h.hub.Register(client)

	go client.writePump()
	go client.readPump()

	return nil
}

// checkOrigin accepts non-browser clients (no Origin header) and browsers
// from the configured origin whitelist.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range h.cfg.Chat.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}

	return false
}
