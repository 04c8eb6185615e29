package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus represents the outcome of a single send attempt.
type NotificationStatus string

const (
	// NotificationStatusSucceeded means the mail gateway accepted the message.
	NotificationStatusSucceeded NotificationStatus = "SUCCEEDED"
	// NotificationStatusFailed means the mail gateway returned an error.
	NotificationStatusFailed NotificationStatus = "FAILED"
)

// Notification represents one persisted send attempt and its outcome.
// Exactly one record is created per attempt, regardless of the result.
type Notification struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"userId"`
	Subject   string             `json:"subject"`
	Body      string             `json:"body"`
	Type      NotificationType   `json:"type"`
	Status    NotificationStatus `json:"status"`
	CreatedOn time.Time          `json:"createdOn"`
	Deleted   bool               `json:"deleted"`
}

// SendNotificationParams represents parameters for sending a notification.
type SendNotificationParams struct {
	UserID  uuid.UUID `json:"userId"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
}

// Validate validates the send notification parameters.
func (p *SendNotificationParams) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrInvalidUserID
	}

	if p.Subject == "" {
		return ErrInvalidSubject
	}

	if p.Body == "" {
		return ErrInvalidBody
	}

	return nil
}
