package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"termtalk/internal/domain/entity"
	mockRepo "termtalk/internal/mocks/repository"
	"termtalk/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// createTestHub builds a hub around a real chat service with a mocked
// message store and starts its event loop. Clients are plain structs with
// buffered send channels; no websocket connections are involved.
func createTestHub(t *testing.T) (*Hub, *mockRepo.MockMessageRepository) {
	messageRepo := mockRepo.NewMockMessageRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	chatUsecase := impl.NewChatService(impl.ChatServiceParams{
		MessageRepo: messageRepo,
		Logger:      logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		chatUsecase: chatUsecase,
		logger:      logger,
		clients:     make(map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbound:     make(chan inbound, 64),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go hub.run()
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		_ = hub.stop(stopCtx)
	})

	return hub, messageRepo
}

func connectTestClient(t *testing.T, hub *Hub, username string, buffer int) *Client {
	client := &Client{
		hub:      hub,
		logger:   hub.logger,
		username: username,
		send:     make(chan []byte, buffer),
	}
	hub.Register(client)

	return client
}

func recvFrame(t *testing.T, client *Client) Envelope {
	t.Helper()

	select {
	case raw, ok := <-client.send:
		require.True(t, ok, "send channel closed")
		var frame Envelope
		require.NoError(t, json.Unmarshal(raw, &frame))

		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")

		return Envelope{}
	}
}

func requireOnlineCount(t *testing.T, client *Client, want int) {
	t.Helper()

	frame := recvFrame(t, client)
	require.Equal(t, EventOnlineUsers, frame.Event)

	var count int
	require.NoError(t, json.Unmarshal(frame.Data, &count))
	require.Equal(t, want, count)
}

func TestHub_OnlineCountTracksConnections(t *testing.T) {
	hub, _ := createTestHub(t)

	alice := connectTestClient(t, hub, "alice", 8)
	requireOnlineCount(t, alice, 1)

	bob := connectTestClient(t, hub, "bob", 8)
	requireOnlineCount(t, alice, 2)
	requireOnlineCount(t, bob, 2)
	assert.Equal(t, 2, hub.Online())

	hub.unregister <- alice
	requireOnlineCount(t, bob, 1)
	assert.Equal(t, 1, hub.Online())
}

func TestHub_BroadcastsChatMessageToAllClients(t *testing.T) {
	hub, messageRepo := createTestHub(t)

	messageRepo.On("Append", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Username == "alice" && m.Text == "hello everyone"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Message).ID = 42
	}).Return(nil)

	alice := connectTestClient(t, hub, "alice", 8)
	requireOnlineCount(t, alice, 1)
	bob := connectTestClient(t, hub, "bob", 8)
	requireOnlineCount(t, alice, 2)
	requireOnlineCount(t, bob, 2)

	payload, err := json.Marshal(map[string]string{"username": "spoofed", "text": "hello everyone"})
	require.NoError(t, err)
	hub.inbound <- inbound{sender: alice, frame: Envelope{Event: EventChatMessage, Data: payload}}

	// The sender receives its own message back, same as everyone else.
	for _, client := range []*Client{alice, bob} {
		frame := recvFrame(t, client)
		require.Equal(t, EventChatMessage, frame.Event)

		var msg messagePayload
		require.NoError(t, json.Unmarshal(frame.Data, &msg))
		assert.Equal(t, int64(42), msg.ID)
		assert.Equal(t, "alice", msg.Username)
		assert.Equal(t, "hello everyone", msg.Text)
		assert.NotEmpty(t, msg.Timestamp)
	}
}

func TestHub_DropsUnknownEvents(t *testing.T) {
	hub, _ := createTestHub(t)

	alice := connectTestClient(t, hub, "alice", 8)
	requireOnlineCount(t, alice, 1)

	hub.inbound <- inbound{sender: alice, frame: Envelope{Event: "typing", Data: json.RawMessage(`{}`)}}

	select {
	case raw := <-alice.send:
		t.Fatalf("expected no frame, got %s", raw)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_DropsStalledClients(t *testing.T) {
	hub, messageRepo := createTestHub(t)

	messageRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	alice := connectTestClient(t, hub, "alice", 8)
	requireOnlineCount(t, alice, 1)

	// A client with no send capacity cannot absorb the registration
	// broadcast, so the fan-out evicts it immediately and announces the
	// corrected count.
	stalled := connectTestClient(t, hub, "stalled", 0)

	requireOnlineCount(t, alice, 2)
	requireOnlineCount(t, alice, 1)
	assert.Equal(t, 1, hub.Online())

	_, open := <-stalled.send
	assert.False(t, open)

	payload, err := json.Marshal(map[string]string{"text": "hi"})
	require.NoError(t, err)
	hub.inbound <- inbound{sender: alice, frame: Envelope{Event: EventChatMessage, Data: payload}}

	frame := recvFrame(t, alice)
	require.Equal(t, EventChatMessage, frame.Event)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, _ := createTestHub(t)

	alice := connectTestClient(t, hub, "alice", 8)
	requireOnlineCount(t, alice, 1)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, hub.stop(stopCtx))

	// Drain until the channel reports closed.
	for {
		if _, open := <-alice.send; !open {
			break
		}
	}
	assert.Equal(t, 0, hub.Online())
}
