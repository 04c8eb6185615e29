// Package web provides the REST gateway for notification management.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
	"github.com/hiiico/vacation-planning-notifications/internal/service"
)

// Server is the HTTP server exposing the notification REST API.
type Server struct {
	router              *gin.Engine
	notificationService service.NotificationService
}

// NewServer creates a new REST server around the notification service.
func NewServer(notificationService service.NotificationService) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:              router,
		notificationService: notificationService,
	}
	s.setupRoutes()

	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1/notifications")
	{
		api.POST("/preferences", s.handleUpsertPreference())
		api.GET("/preferences", s.handleGetPreference())
		api.PUT("/preferences", s.handleChangePreference())
		api.POST("", s.handleSendNotification())
		api.GET("", s.handleHistory())
	}

	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "notifications"})
	})
}

// handleUpsertPreference creates or overwrites a user's preference.
func (s *Server) handleUpsertPreference() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertPreferenceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

			return
		}

		preference, err := s.notificationService.UpsertPreference(c.Request.Context(), &model.UpsertPreferenceParams{
			UserID:      req.UserID,
			Type:        req.Type,
			Enabled:     req.NotificationEnabled,
			ContactInfo: req.ContactInfo,
		})
		if err != nil {
			s.respondError(c, err)

			return
		}

		c.JSON(http.StatusCreated, toPreferenceResponse(preference))
	}
}

// handleGetPreference returns the preference for the user in the query.
func (s *Server) handleGetPreference() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}

		preference, err := s.notificationService.GetPreferenceByUserID(c.Request.Context(), userID)
		if err != nil {
			s.respondError(c, err)

			return
		}

		c.JSON(http.StatusOK, toPreferenceResponse(preference))
	}
}

// handleChangePreference flips the enabled flag for the user in the query.
func (s *Server) handleChangePreference() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}

		enable, err := strconv.ParseBool(c.Query("enable"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "enable query parameter must be a boolean"})

			return
		}

		preference, err := s.notificationService.ChangeNotificationPreference(c.Request.Context(), userID, enable)
		if err != nil {
			s.respondError(c, err)

			return
		}

		c.JSON(http.StatusOK, toPreferenceResponse(preference))
	}
}

// handleSendNotification sends an email notification. Both SUCCEEDED and
// FAILED outcomes answer 201: the request was accepted and processed, and
// the body reports the actual outcome.
func (s *Server) handleSendNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notificationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

			return
		}

		notification, err := s.notificationService.SendNotification(c.Request.Context(), &model.SendNotificationParams{
			UserID:  req.UserID,
			Subject: req.Subject,
			Body:    req.Body,
		})
		if err != nil {
			s.respondError(c, err)

			return
		}

		c.JSON(http.StatusCreated, toNotificationResponse(notification))
	}
}

// handleHistory lists all non-deleted notifications for the user.
func (s *Server) handleHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromQuery(c)
		if !ok {
			return
		}

		notifications, err := s.notificationService.GetNotificationHistory(c.Request.Context(), userID)
		if err != nil {
			s.respondError(c, err)

			return
		}

		c.JSON(http.StatusOK, toNotificationResponses(notifications))
	}
}

func userIDFromQuery(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("userId")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId query parameter is required"})

		return uuid.Nil, false
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId must be a valid UUID"})

		return uuid.Nil, false
	}

	return userID, true
}

// respondError translates domain errors into HTTP statuses without leaking
// internal state on unexpected failures.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrPreferenceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotificationsDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrInvalidUserID),
		errors.Is(err, model.ErrInvalidContactInfo),
		errors.Is(err, model.ErrInvalidSubject),
		errors.Is(err, model.ErrInvalidBody),
		errors.Is(err, model.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
