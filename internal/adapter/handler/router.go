package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haonguyen-dev/meeting-notes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *MeetingHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *MeetingHandler) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	api := e.Group("/api")

	api.POST("/process-audio", rt.meetingHandler.ProcessAudio)

	meetings := api.Group("/meetings")
	meetings.GET("", rt.meetingHandler.ListRecent)
	meetings.GET("/stats", rt.meetingHandler.Stats)
	meetings.GET("/by-tag/:tag", rt.meetingHandler.ListByTag)
	meetings.GET("/by-purpose/:purpose", rt.meetingHandler.ListByPurpose)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
