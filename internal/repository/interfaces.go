// Package repository provides data access interfaces and implementations.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// PreferenceRepository defines methods for notification preference data access.
type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error)
	Create(ctx context.Context, preference *model.NotificationPreference) (*model.NotificationPreference, error)
	Update(ctx context.Context, preference *model.NotificationPreference) (*model.NotificationPreference, error)
}

// NotificationRepository defines methods for notification history data access.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) (*model.Notification, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error)
}

// TransactionManager defines methods for database transaction management.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
