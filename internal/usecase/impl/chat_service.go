package impl

import (
	"context"
	"log/slog"
	"time"

	"termtalk/internal/domain/entity"
	domainerrors "termtalk/internal/domain/errors"
	"termtalk/internal/domain/repository"
	"termtalk/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// timestampLayout renders the receipt time the way the chat client displays
// it, e.g. "3:04:05 PM".
const timestampLayout = "3:04:05 PM"

// chatService implements the ChatUsecase interface.
type chatService struct {
	messageRepo repository.MessageRepository
	now         func() time.Time
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for chatService, injected by Fx.
type ChatServiceParams struct {
	fx.In

	MessageRepo repository.MessageRepository
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		messageRepo: params.MessageRepo,
		now:         time.Now,
		logger:      params.Logger,
	}
}

// AcceptMessage timestamps and persists an incoming message and returns the
// message to broadcast. Durability is best-effort: if the append fails the
// error is logged and the message is still handed to the fan-out, so a
// storage outage degrades durability but not live delivery. Sessions not
// connected at broadcast time must rely on History.
func (srv *chatService) AcceptMessage(ctx context.Context, senderUsername string, in *usecase.IncomingMessage) *entity.Message {
	msg := &entity.Message{
		Username:  senderUsername,
		Text:      in.Text,
		Timestamp: srv.now().Format(timestampLayout),
	}

	if err := srv.messageRepo.Append(ctx, msg); err != nil {
		srv.logger.Error("Failed to persist chat message",
			slog.String("username", senderUsername),
			slog.Any("error", err),
		)
	}

	return msg
}

// History returns the full message log in canonical order.
func (srv *chatService) History(ctx context.Context) ([]entity.Message, error) {
	messages, err := srv.messageRepo.ListAll(ctx)
	if err != nil {
		srv.logger.Error("Failed to load message history", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrMessageHistoryUnavailable, err.Error())
	}

	return messages, nil
}

// HistoryAfter returns messages newer than the given ID watermark.
func (srv *chatService) HistoryAfter(ctx context.Context, afterID int64) ([]entity.Message, error) {
	messages, err := srv.messageRepo.ListAfter(ctx, afterID)
	if err != nil {
		srv.logger.Error("Failed to load message history", slog.Int64("afterID", afterID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrMessageHistoryUnavailable, err.Error())
	}

	return messages, nil
}
