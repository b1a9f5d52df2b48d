package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"termtalk/internal/domain/entity"
	domainerrors "termtalk/internal/domain/errors"
	mockRepo "termtalk/internal/mocks/repository"
	"termtalk/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestChatService(t *testing.T) (*chatService, *mockRepo.MockMessageRepository) {
	messageRepo := mockRepo.NewMockMessageRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := &chatService{
		messageRepo: messageRepo,
		now:         func() time.Time { return time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC) },
		logger:      logger,
	}

	return svc, messageRepo
}

func TestChatService_AcceptMessage(t *testing.T) {
	svc, messageRepo := createTestChatService(t)
	ctx := context.Background()

	messageRepo.On("Append", ctx, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Username == "bob" && m.Text == "hi" && m.Timestamp != ""
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Message).ID = 7
	}).Return(nil)

	msg := svc.AcceptMessage(ctx, "bob", &usecase.IncomingMessage{Username: "spoofed", Text: "hi"})
	require.NotNil(t, msg)
	assert.Equal(t, int64(7), msg.ID)
	// The sender identity comes from the session, never from the payload.
	assert.Equal(t, "bob", msg.Username)
	assert.Equal(t, "3:04:05 PM", msg.Timestamp)
}

func TestChatService_AcceptMessageSwallowsPersistenceFailure(t *testing.T) {
	svc, messageRepo := createTestChatService(t)
	ctx := context.Background()

	messageRepo.On("Append", ctx, mock.Anything).Return(errors.New("database is down"))

	// The message must still come back for broadcast: durability is
	// best-effort, live delivery is not sacrificed to a storage outage.
	msg := svc.AcceptMessage(ctx, "bob", &usecase.IncomingMessage{Text: "hi"})
	require.NotNil(t, msg)
	assert.Equal(t, "hi", msg.Text)
	assert.Zero(t, msg.ID)
}

func TestChatService_History(t *testing.T) {
	svc, messageRepo := createTestChatService(t)
	ctx := context.Background()

	stored := []entity.Message{
		{ID: 1, Username: "alice", Text: "first", Timestamp: "3:04:01 PM"},
		{ID: 2, Username: "bob", Text: "second", Timestamp: "3:04:02 PM"},
	}
	messageRepo.On("ListAll", ctx).Return(stored, nil).Twice()

	messages, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, messages)

	// Reading twice without an intervening append is idempotent.
	again, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, messages, again)
}

func TestChatService_HistoryFailure(t *testing.T) {
	svc, messageRepo := createTestChatService(t)
	ctx := context.Background()

	messageRepo.On("ListAll", ctx).Return(nil, errors.New("database is down"))

	messages, err := svc.History(ctx)
	assert.Nil(t, messages)
	assert.True(t, errors.Is(err, domainerrors.ErrMessageHistoryUnavailable))
}

func TestChatService_HistoryAfter(t *testing.T) {
	svc, messageRepo := createTestChatService(t)
	ctx := context.Background()

	messageRepo.On("ListAfter", ctx, int64(5)).Return([]entity.Message{
		{ID: 6, Username: "alice", Text: "later", Timestamp: "3:05:00 PM"},
	}, nil)

	messages, err := svc.HistoryAfter(ctx, 5)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, int64(6), messages[0].ID)
}
