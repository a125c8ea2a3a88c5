package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/internal/stores/user"
)

// Package-level user directory set up by Init
var users user.Store

// Init wires the auth module to its user directory
func Init(store user.Store) {
	users = store
}

// Register routes for the auth module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/auth")

	group.POST("/signup", Signup) // Register a new user
	group.POST("/login", Login)   // Verify credentials
}
