package web

import (
	"time"

	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// upsertPreferenceRequest is the body of POST /api/v1/notifications/preferences.
type upsertPreferenceRequest struct {
	UserID              uuid.UUID              `json:"userId" binding:"required"`
	NotificationEnabled bool                   `json:"notificationEnabled"`
	Type                model.NotificationType `json:"type" binding:"required"`
	ContactInfo         string                 `json:"contactInfo" binding:"required"`
}

// notificationRequest is the body of POST /api/v1/notifications.
type notificationRequest struct {
	UserID  uuid.UUID `json:"userId" binding:"required"`
	Subject string    `json:"subject" binding:"required"`
	Body    string    `json:"body" binding:"required"`
}

// preferenceResponse is the JSON shape of a notification preference.
type preferenceResponse struct {
	ID          uuid.UUID              `json:"id"`
	UserID      uuid.UUID              `json:"userId"`
	Type        model.NotificationType `json:"type"`
	Enabled     bool                   `json:"enabled"`
	ContactInfo string                 `json:"contactInfo"`
}

// notificationResponse is the JSON shape of one send attempt.
type notificationResponse struct {
	Subject   string                   `json:"subject"`
	Status    model.NotificationStatus `json:"status"`
	CreatedOn time.Time                `json:"createdOn"`
	Type      model.NotificationType   `json:"type"`
}

func toPreferenceResponse(p *model.NotificationPreference) preferenceResponse {
	return preferenceResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Type:        p.Type,
		Enabled:     p.Enabled,
		ContactInfo: p.ContactInfo,
	}
}

func toNotificationResponse(n *model.Notification) notificationResponse {
	return notificationResponse{
		Subject:   n.Subject,
		Status:    n.Status,
		CreatedOn: n.CreatedOn,
		Type:      n.Type,
	}
}

func toNotificationResponses(notifications []*model.Notification) []notificationResponse {
	responses := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toNotificationResponse(n))
	}

	return responses
}
