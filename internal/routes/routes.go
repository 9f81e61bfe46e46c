package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/gatorbitepcc/cindr/internal/handler"
	"github.com/gatorbitepcc/cindr/internal/middleware"
	"github.com/gatorbitepcc/cindr/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	connectionHandler *handler.ConnectionHandler,
	chatHandler *handler.ChatHandler,
	groupHandler *handler.GroupHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	authed := api.Group("", middleware.JWTAuth(jwtManager))

	// Profiles and the swipe feed
	users := authed.Group("/users")
	users.GET("/feed", userHandler.Feed)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.PUT("/me/photos", userHandler.UpdatePhotos)
	users.GET("/:id", userHandler.GetProfile)

	// Connection lifecycle
	connections := authed.Group("/connections")
	connections.POST("", connectionHandler.Request)
	connections.GET("/pending", connectionHandler.Pending)
	connections.POST("/:id/accept", connectionHandler.Accept)
	connections.DELETE("/:id", connectionHandler.Decline)

	// Chat threads and messages
	chats := authed.Group("/chats")
	chats.GET("", chatHandler.Threads)
	chats.GET("/:id/messages", chatHandler.Messages)
	chats.POST("/:id/messages", chatHandler.SendMessage)

	// Support groups
	groups := authed.Group("/groups")
	groups.GET("", groupHandler.List)
	groups.POST("", groupHandler.Create)
	groups.GET("/mine", groupHandler.Mine)
	groups.GET("/:id", groupHandler.Get)
	groups.POST("/:id/join", groupHandler.Join)

	// Real-time event stream (token via query param)
	router.GET("/ws", wsHandler.Connect)
}
