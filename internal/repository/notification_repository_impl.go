package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// NotificationRepositoryImpl implements NotificationRepository using PostgreSQL.
type NotificationRepositoryImpl struct {
	pool *pgxpool.Pool
}

// NewNotificationRepositoryImpl creates a new NotificationRepository implementation.
func NewNotificationRepositoryImpl(pool *pgxpool.Pool) NotificationRepository {
	return &NotificationRepositoryImpl{pool: pool}
}

const notificationColumns = `id, user_id, subject, body, type, status, created_on, deleted`

// Create inserts a new notification record.
func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *model.Notification) (*model.Notification, error) {
	row := querierFrom(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO notifications (`+notificationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+notificationColumns,
		notification.ID, notification.UserID, notification.Subject, notification.Body,
		notification.Type, notification.Status, notification.CreatedOn, notification.Deleted)

	var n model.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Subject, &n.Body, &n.Type, &n.Status, &n.CreatedOn, &n.Deleted)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &n, nil
}

// ListByUserID retrieves all non-deleted notifications for a user.
func (r *NotificationRepositoryImpl) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	rows, err := querierFrom(ctx, r.pool).Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE user_id = $1 AND deleted = FALSE`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %s: %w", userID, err)
	}
	defer rows.Close()

	notifications := make([]*model.Notification, 0)

	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Subject, &n.Body, &n.Type, &n.Status, &n.CreatedOn, &n.Deleted); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notifications: %w", err)
	}

	return notifications, nil
}
