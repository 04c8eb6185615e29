package model

import "errors"

var (
	// ErrInvalidUserID is returned when a user id is missing or zero.
	ErrInvalidUserID = errors.New("userId is required")
	// ErrInvalidContactInfo is returned when contact info is empty.
	ErrInvalidContactInfo = errors.New("contactInfo is required")
	// ErrInvalidSubject is returned when a notification subject is empty.
	ErrInvalidSubject = errors.New("subject is required")
	// ErrInvalidBody is returned when a notification body is empty.
	ErrInvalidBody = errors.New("body is required")
	// ErrUnsupportedType is returned when the notification channel is unknown.
	ErrUnsupportedType = errors.New("unsupported notification type")
	// ErrPreferenceNotFound is returned when no preference exists for a user.
	ErrPreferenceNotFound = errors.New("notification preference not found")
	// ErrNotificationsDisabled is returned when a user has opted out of notifications.
	ErrNotificationsDisabled = errors.New("user is not allowed to receive notifications")
)
