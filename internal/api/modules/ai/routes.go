package ai_module

import (
	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/internal/interview"
)

// Package-level session manager set up by Init
var manager *interview.Manager

// Init wires the ai module to the session manager
func Init(m *interview.Manager) {
	manager = m
}

// Register routes for the ai module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/ai")

	group.GET("/greeting", GetGreeting) // Personalized dashboard greeting
}
