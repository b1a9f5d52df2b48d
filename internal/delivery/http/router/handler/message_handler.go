package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"termtalk/internal/delivery/http/response"
	"termtalk/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MessageHandler serves the persisted chat history.
type MessageHandler struct {
	uc     usecase.ChatUsecase
	logger *slog.Logger
}

// NewMessageHandler is the constructor for MessageHandler, injected by Fx.
func NewMessageHandler(uc usecase.ChatUsecase, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetMessages returns the message log in chronological order. An optional
// after=<id> query parameter returns only messages newer than that ID, so
// clients can close the gap between fetching history and subscribing to
// the live feed without duplicates.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	afterParam := c.QueryParam("after")
	if afterParam == "" {
		messages, err := h.uc.History(c.Request().Context())
		if err != nil {
			return errors.WithStack(err)
		}

		return c.JSON(http.StatusOK, response.NewMessages(messages))
	}

	afterID, err := strconv.ParseInt(afterParam, 10, 64)
	if err != nil || afterID < 0 {
		return response.JSONError(c, http.StatusBadRequest, "Invalid after parameter")
	}

	messages, err := h.uc.HistoryAfter(c.Request().Context(), afterID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.NewMessages(messages))
}
