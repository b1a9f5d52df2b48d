// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"termtalk/internal/delivery/http/middleware"
	"termtalk/internal/delivery/http/router/handler"
	"termtalk/internal/delivery/ws"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	MessageHandler *handler.MessageHandler
	WSHandler      *ws.Handler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	messageHandler *handler.MessageHandler
	wsHandler      *ws.Handler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		messageHandler: params.MessageHandler,
		wsHandler:      params.WSHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	e.POST("/register", r.userHandler.Register)
	e.POST("/login", r.userHandler.Login)

	// Routes that require a valid bearer token
	authed := e.Group("", r.authMiddleware.Authenticate)
	{
		authed.GET("/me", r.userHandler.Me)
		authed.GET("/messages", r.messageHandler.GetMessages)
	}

	// The websocket upgrade authenticates inline so it can also accept the
	// token as a query parameter.
	e.GET("/ws", r.wsHandler.Serve)
}
