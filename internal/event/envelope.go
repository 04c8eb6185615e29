// Package event provides the message-bus gateway: it consumes request
// envelopes from the input stream and publishes reply envelopes to the
// fixed reply stream.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// Known event types. Inbound types without a case here are dropped.
const (
	TypeUpsertNotificationPreference   = "UPSERT_NOTIFICATION_PREFERENCE"
	TypeNotificationRequest            = "NOTIFICATION_REQUEST"
	TypeNotificationPreferenceResponse = "NOTIFICATION_PREFERENCE_RESPONSE"
	TypeNotificationResponse           = "NOTIFICATION_RESPONSE"
)

// Envelope is the outer wrapper for all bus messages in both directions.
type Envelope struct {
	EventType string `json:"eventType"`
	Payload   any    `json:"payload"`
}

// rawEnvelope defers payload decoding until the event type is known.
type rawEnvelope struct {
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
}

// PreferenceResponsePayload is the payload of a NOTIFICATION_PREFERENCE_RESPONSE.
type PreferenceResponsePayload struct {
	ID          uuid.UUID              `json:"id"`
	UserID      uuid.UUID              `json:"userId"`
	Type        model.NotificationType `json:"type"`
	Enabled     bool                   `json:"enabled"`
	ContactInfo string                 `json:"contactInfo"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}

// NotificationResponsePayload is the payload of a NOTIFICATION_RESPONSE.
type NotificationResponsePayload struct {
	UserID    uuid.UUID                `json:"userId"`
	Subject   string                   `json:"subject"`
	CreatedOn time.Time                `json:"createdOn"`
	Status    model.NotificationStatus `json:"status"`
	Type      model.NotificationType   `json:"type"`
	Success   bool                     `json:"success"`
	Error     string                   `json:"error,omitempty"`
	Timestamp time.Time                `json:"timestamp"`
}

func newPreferenceResponse(preference *model.NotificationPreference) *Envelope {
	return &Envelope{
		EventType: TypeNotificationPreferenceResponse,
		Payload: PreferenceResponsePayload{
			ID:          preference.ID,
			UserID:      preference.UserID,
			Type:        preference.Type,
			Enabled:     preference.Enabled,
			ContactInfo: preference.ContactInfo,
			Success:     true,
			Timestamp:   time.Now().UTC(),
		},
	}
}

func newPreferenceFailure(userID uuid.UUID, err error) *Envelope {
	return &Envelope{
		EventType: TypeNotificationPreferenceResponse,
		Payload: PreferenceResponsePayload{
			UserID:    userID,
			Success:   false,
			Error:     fmt.Sprintf("processing failed: %s", err),
			Timestamp: time.Now().UTC(),
		},
	}
}

func newNotificationResponse(notification *model.Notification) *Envelope {
	return &Envelope{
		EventType: TypeNotificationResponse,
		Payload: NotificationResponsePayload{
			UserID:    notification.UserID,
			Subject:   notification.Subject,
			CreatedOn: notification.CreatedOn,
			Status:    notification.Status,
			Type:      notification.Type,
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
	}
}

func newNotificationFailure(userID uuid.UUID, err error) *Envelope {
	return &Envelope{
		EventType: TypeNotificationResponse,
		Payload: NotificationResponsePayload{
			UserID:    userID,
			Success:   false,
			Error:     fmt.Sprintf("processing failed: %s", err),
			Timestamp: time.Now().UTC(),
		},
	}
}
