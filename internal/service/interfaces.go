// Package service provides business logic layer implementations.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// NotificationService defines business logic methods for notification
// preferences and notification delivery.
type NotificationService interface {
	UpsertPreference(ctx context.Context, params *model.UpsertPreferenceParams) (*model.NotificationPreference, error)
	GetPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error)
	ChangeNotificationPreference(ctx context.Context, userID uuid.UUID, enabled bool) (*model.NotificationPreference, error)
	SendNotification(ctx context.Context, params *model.SendNotificationParams) (*model.Notification, error)
	GetNotificationHistory(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
}
