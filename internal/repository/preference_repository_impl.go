package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// PreferenceRepositoryImpl implements PreferenceRepository using PostgreSQL.
type PreferenceRepositoryImpl struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepositoryImpl creates a new PreferenceRepository implementation.
func NewPreferenceRepositoryImpl(pool *pgxpool.Pool) PreferenceRepository {
	return &PreferenceRepositoryImpl{pool: pool}
}

const preferenceColumns = `id, user_id, type, enabled, contact_info, created_on, updated_on`

func scanPreference(row pgx.Row) (*model.NotificationPreference, error) {
	var p model.NotificationPreference
	err := row.Scan(&p.ID, &p.UserID, &p.Type, &p.Enabled, &p.ContactInfo, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// GetByUserID retrieves the preference for a user. Returns
// model.ErrPreferenceNotFound when no record exists.
func (r *PreferenceRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	row := querierFrom(ctx, r.pool).QueryRow(ctx,
		`SELECT `+preferenceColumns+` FROM notification_preferences WHERE user_id = $1`, userID)

	preference, err := scanPreference(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPreferenceNotFound
		}

		return nil, fmt.Errorf("failed to get preference for user %s: %w", userID, err)
	}

	return preference, nil
}

// Create inserts a new preference record.
func (r *PreferenceRepositoryImpl) Create(ctx context.Context, preference *model.NotificationPreference) (*model.NotificationPreference, error) {
	row := querierFrom(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO notification_preferences (`+preferenceColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+preferenceColumns,
		preference.ID, preference.UserID, preference.Type, preference.Enabled,
		preference.ContactInfo, preference.CreatedOn, preference.UpdatedOn)

	created, err := scanPreference(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create preference: %w", err)
	}

	return created, nil
}

// Update overwrites the preference record keyed by user_id.
func (r *PreferenceRepositoryImpl) Update(ctx context.Context, preference *model.NotificationPreference) (*model.NotificationPreference, error) {
	row := querierFrom(ctx, r.pool).QueryRow(ctx,
		`UPDATE notification_preferences
		 SET type = $2, enabled = $3, contact_info = $4, updated_on = $5
		 WHERE user_id = $1
		 RETURNING `+preferenceColumns,
		preference.UserID, preference.Type, preference.Enabled,
		preference.ContactInfo, preference.UpdatedOn)

	updated, err := scanPreference(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPreferenceNotFound
		}

		return nil, fmt.Errorf("failed to update preference: %w", err)
	}

	return updated, nil
}
