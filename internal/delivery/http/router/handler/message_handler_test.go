package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"termtalk/config"
	"termtalk/internal/delivery/http/middleware"
	"termtalk/internal/delivery/http/validator"
	"termtalk/internal/domain/entity"
	"termtalk/internal/infra/auth"
	mockRepo "termtalk/internal/mocks/repository"
	"termtalk/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type messageFixtures struct {
	echo        *echo.Echo
	messageRepo *mockRepo.MockMessageRepository
	token       string
}

func createTestMessageHandler(t *testing.T) messageFixtures {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4},
	}
	cfg.SecretKey.Access = "test-secret"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userRepo := mockRepo.NewMockUserRepository(t)
	messageRepo := mockRepo.NewMockMessageRepository(t)

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	token, err := tokenService.GenerateToken(uuid.New(), "alice")
	require.NoError(t, err)

	userUsecase := impl.NewUserService(impl.UserServiceParams{
		UserRepo:     userRepo,
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Logger:       logger,
	})
	chatUsecase := impl.NewChatService(impl.ChatServiceParams{
		MessageRepo: messageRepo,
		Logger:      logger,
	})

	messageHandler := NewMessageHandler(chatUsecase, logger)
	authMiddleware := middleware.NewAuthMiddleware(userUsecase, logger)
	errorMiddleware := middleware.NewErrorMiddleware(logger)

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = errorMiddleware.HandleHTTPError
	e.GET("/messages", messageHandler.GetMessages, authMiddleware.Authenticate)

	return messageFixtures{echo: e, messageRepo: messageRepo, token: token}
}

func TestMessageHandler_GetMessages(t *testing.T) {
	f := createTestMessageHandler(t)

	f.messageRepo.On("ListAll", mock.Anything).Return([]entity.Message{
		{ID: 1, Username: "alice", Text: "hello", Timestamp: "3:04:01 PM"},
		{ID: 2, Username: "bob", Text: "hi alice", Timestamp: "3:04:05 PM"},
	}, nil)

	rec := doJSON(f.echo, http.MethodGet, "/messages", "", f.token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":1,"username":"alice","text":"hello","timestamp":"3:04:01 PM"},
		{"id":2,"username":"bob","text":"hi alice","timestamp":"3:04:05 PM"}
	]`, rec.Body.String())
}

func TestMessageHandler_GetMessagesEmptyHistory(t *testing.T) {
	f := createTestMessageHandler(t)

	f.messageRepo.On("ListAll", mock.Anything).Return([]entity.Message{}, nil)

	rec := doJSON(f.echo, http.MethodGet, "/messages", "", f.token)

	require.Equal(t, http.StatusOK, rec.Code)
	// An empty history is an empty array, not null.
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMessageHandler_GetMessagesAfter(t *testing.T) {
	f := createTestMessageHandler(t)

	f.messageRepo.On("ListAfter", mock.Anything, int64(1)).Return([]entity.Message{
		{ID: 2, Username: "bob", Text: "hi alice", Timestamp: "3:04:05 PM"},
	}, nil)

	rec := doJSON(f.echo, http.MethodGet, "/messages?after=1", "", f.token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"username":"bob","text":"hi alice","timestamp":"3:04:05 PM"}]`, rec.Body.String())
}

func TestMessageHandler_GetMessagesBadAfter(t *testing.T) {
	tests := []struct {
		name  string
		after string
	}{
		{name: "not a number", after: "abc"},
		{name: "negative", after: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestMessageHandler(t)

			rec := doJSON(f.echo, http.MethodGet, "/messages?after="+tt.after, "", f.token)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"Invalid after parameter"}`, rec.Body.String())
		})
	}
}

func TestMessageHandler_GetMessagesRequiresToken(t *testing.T) {
	f := createTestMessageHandler(t)

	rec := doJSON(f.echo, http.MethodGet, "/messages", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}

func TestMessageHandler_GetMessagesStorageFailure(t *testing.T) {
	f := createTestMessageHandler(t)

	f.messageRepo.On("ListAll", mock.Anything).Return(nil, errors.New("connection refused"))

	rec := doJSON(f.echo, http.MethodGet, "/messages", "", f.token)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Could not load message history"}`, rec.Body.String())
}
