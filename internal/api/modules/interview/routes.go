package interview_module

import (
	"github.com/gin-gonic/gin"

	"github.com/ethanbaker/interview/internal/interview"
)

// Package-level session manager set up by Init
var manager *interview.Manager

// Init wires the interview module to the session manager
func Init(m *interview.Manager) {
	manager = m
}

// Register routes for the interview module
func RegisterRoutes(g *gin.RouterGroup) {
	group := g.Group("/interview")

	// Session lifecycle routes
	group.POST("/sessions", CreateSession)          // Start a new interview session
	group.GET("/sessions/:id", GetSession)          // Get an existing session by ID
	group.POST("/sessions/:id/answers", SaveAnswer) // Record an answer for a question index
	group.GET("/sessions/:id/report", GetReport)    // Get the evaluation report for a session
}
