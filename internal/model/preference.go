// Package model defines domain models and data structures.
package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the delivery channel of a notification.
type NotificationType string

const (
	// NotificationTypeEmail represents the email delivery channel.
	NotificationTypeEmail NotificationType = "EMAIL"
)

// Valid reports whether the notification type is a known channel.
func (t NotificationType) Valid() bool {
	return t == NotificationTypeEmail
}

// NotificationPreference represents a per-user notification preference.
// At most one preference exists per user; upserts are keyed on UserID.
type NotificationPreference struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	Type        NotificationType `json:"type"`
	Enabled     bool             `json:"enabled"`
	ContactInfo string           `json:"contactInfo"`
	CreatedOn   time.Time        `json:"createdOn"`
	UpdatedOn   time.Time        `json:"updatedOn"`
}

// UpsertPreferenceParams represents parameters for creating or updating
// a user's notification preference.
type UpsertPreferenceParams struct {
	UserID      uuid.UUID        `json:"userId"`
	Type        NotificationType `json:"type"`
	Enabled     bool             `json:"notificationEnabled"`
	ContactInfo string           `json:"contactInfo"`
}

// Validate validates the upsert preference parameters.
func (p *UpsertPreferenceParams) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	if !p.Type.Valid() {
		return ErrUnsupportedType
	}

	if p.ContactInfo == "" {
		return ErrInvalidContactInfo
	}

	return nil
}
