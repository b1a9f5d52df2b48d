// Package ws implements the realtime chat channel: a broadcast hub, one
// client per websocket connection, and the HTTP upgrade handler.
package ws

import (
	"context"
	"log/slog"
	"sync/atomic"

	"termtalk/internal/domain/lifecycle"
	"termtalk/internal/usecase"

	"go.uber.org/fx"
)

// inbound is a raw frame received from a connected client, paired with the
// sending session so the hub can stamp the authenticated username.
type inbound struct {
	sender *Client
	frame  Envelope
}

// Hub owns the set of connected clients and serializes all registration,
// disconnection, and broadcast through a single event loop. Every state
// change to the client set happens on that loop.
type Hub struct {
	chatUsecase usecase.ChatUsecase
	logger      *slog.Logger

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound

	online atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// HubParams defines the dependencies for the Hub.
type HubParams struct {
	fx.In
	fx.Lifecycle

	ChatUsecase usecase.ChatUsecase
	Logger      *slog.Logger
}

// NewHub creates the hub and ties its event loop to the application
// lifecycle.
func NewHub(params HubParams) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		chatUsecase: params.ChatUsecase,
		logger:      params.Logger,
		clients:     make(map[*Client]struct{}),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbound:     make(chan inbound, 64),
		ctx:         ctx,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.run()

			return nil
		},
		OnStop: hub.stop,
	})

	return hub
}

// Online reports the current number of connected clients.
func (h *Hub) Online() int {
	return int(h.online.Load())
}

// Register hands a freshly upgraded connection to the event loop.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.ctx.Done():
		close(client.send)
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()

			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.online.Store(int64(len(h.clients)))
			h.logger.Info("Client connected",
				slog.String("username", client.username),
				slog.Int("online", len(h.clients)),
			)
			h.broadcastOnlineCount()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; !ok {
				continue
			}
			delete(h.clients, client)
			close(client.send)
			h.online.Store(int64(len(h.clients)))
			h.logger.Info("Client disconnected",
				slog.String("username", client.username),
				slog.Int("online", len(h.clients)),
			)
			h.broadcastOnlineCount()

		case in := <-h.inbound:
			h.handleInbound(in)
		}
	}
}

// handleInbound persists a chat message and fans the stored form out to
// every connected client, the sender included.
func (h *Hub) handleInbound(in inbound) {
	if in.frame.Event != EventChatMessage {
		h.logger.Warn("Dropping unknown event",
			slog.String("event", in.frame.Event),
			slog.String("username", in.sender.username),
		)

		return
	}

	var payload usecase.IncomingMessage
	if err := decodeMessagePayload(in.frame.Data, &payload); err != nil {
		h.logger.Warn("Dropping malformed chat message",
			slog.String("username", in.sender.username),
			slog.String("error", err.Error()),
		)

		return
	}

	msg := h.chatUsecase.AcceptMessage(h.ctx, in.sender.username, &payload)

	frame, err := encodeChatMessage(msg)
	if err != nil {
		h.logger.Error("Failed to encode chat message", slog.String("error", err.Error()))

		return
	}

	h.broadcastFrame(frame)
}

func (h *Hub) broadcastOnlineCount() {
	frame, err := encodeOnlineUsers(len(h.clients))
	if err != nil {
		h.logger.Error("Failed to encode online count", slog.String("error", err.Error()))

		return
	}

	h.broadcastFrame(frame)
}

// broadcastFrame delivers a frame to every client. A client whose send
// buffer is full is dropped rather than allowed to stall the loop.
func (h *Hub) broadcastFrame(frame []byte) {
	var stalled []*Client
	for client := range h.clients {
		select {
		case client.send <- frame:
		default:
			stalled = append(stalled, client)
		}
	}

	for _, client := range stalled {
		delete(h.clients, client)
		close(client.send)
		h.logger.Warn("Dropping stalled client", slog.String("username", client.username))
	}

	if len(stalled) > 0 {
		h.online.Store(int64(len(h.clients)))
		h.broadcastOnlineCount()
	}
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.online.Store(0)
}

func (h *Hub) stop(ctx context.Context) error {
	h.logger.Info("Shutting down websocket hub")
	h.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-h.done:
		return nil
	case <-shutdownCtx.Done():
		return shutdownCtx.Err()
	}
}
