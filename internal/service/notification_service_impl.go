package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/mail"
	"github.com/hiiico/vacation-planning-notifications/internal/model"
	"github.com/hiiico/vacation-planning-notifications/internal/repository"
)

// NotificationServiceImpl implements NotificationService.
type NotificationServiceImpl struct {
	preferenceRepo   repository.PreferenceRepository
	notificationRepo repository.NotificationRepository
	transactionMgr   repository.TransactionManager
	mailSender       mail.Sender
}

// NewNotificationServiceImpl creates a new NotificationService implementation.
func NewNotificationServiceImpl(
	preferenceRepo repository.PreferenceRepository,
	notificationRepo repository.NotificationRepository,
	transactionMgr repository.TransactionManager,
	mailSender mail.Sender,
) NotificationService {
	return &NotificationServiceImpl{
		preferenceRepo:   preferenceRepo,
		notificationRepo: notificationRepo,
		transactionMgr:   transactionMgr,
		mailSender:       mailSender,
	}
}

// UpsertPreference creates the preference for a user or overwrites the
// existing one. The find-then-save runs in a transaction so concurrent
// upserts for the same user cannot interleave; the unique constraint on
// user_id backs the one-record-per-user invariant at the schema level.
func (s *NotificationServiceImpl) UpsertPreference(ctx context.Context, params *model.UpsertPreferenceParams) (*model.NotificationPreference, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var preference *model.NotificationPreference

	err := s.transactionMgr.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.preferenceRepo.GetByUserID(ctx, params.UserID)

		switch {
		case err == nil:
			existing.Type = params.Type
			existing.Enabled = params.Enabled
			existing.ContactInfo = params.ContactInfo
			existing.UpdatedOn = time.Now().UTC()

			preference, err = s.preferenceRepo.Update(ctx, existing)

			return err
		case errors.Is(err, model.ErrPreferenceNotFound):
			now := time.Now().UTC()
			preference, err = s.preferenceRepo.Create(ctx, &model.NotificationPreference{
				ID:          uuid.New(),
				UserID:      params.UserID,
				Type:        params.Type,
				Enabled:     params.Enabled,
				ContactInfo: params.ContactInfo,
				CreatedOn:   now,
				UpdatedOn:   now,
			})

			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	return preference, nil
}

// GetPreferenceByUserID retrieves the preference for a user. Returns
// model.ErrPreferenceNotFound when the user has none.
func (s *NotificationServiceImpl) GetPreferenceByUserID(ctx context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	return s.preferenceRepo.GetByUserID(ctx, userID)
}

// ChangeNotificationPreference flips the enabled flag of an existing
// preference. The read-modify-write runs in a transaction.
func (s *NotificationServiceImpl) ChangeNotificationPreference(ctx context.Context, userID uuid.UUID, enabled bool) (*model.NotificationPreference, error) {
	var preference *model.NotificationPreference

	err := s.transactionMgr.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.preferenceRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}

		existing.Enabled = enabled
		existing.UpdatedOn = time.Now().UTC()

		preference, err = s.preferenceRepo.Update(ctx, existing)

		return err
	})
	if err != nil {
		return nil, err
	}

	return preference, nil
}

// SendNotification delivers an email to the user and records the attempt.
// A mail gateway failure is folded into the record's FAILED status, never
// returned as an error: the caller always needs a concrete outcome report.
// The record is persisted exactly once, after the outcome is known.
func (s *NotificationServiceImpl) SendNotification(ctx context.Context, params *model.SendNotificationParams) (*model.Notification, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	preference, err := s.preferenceRepo.GetByUserID(ctx, params.UserID)
	if err != nil {
		return nil, err
	}

	if !preference.Enabled {
		return nil, model.ErrNotificationsDisabled
	}

	notification := &model.Notification{
		ID:        uuid.New(),
		UserID:    params.UserID,
		Subject:   params.Subject,
		Body:      params.Body,
		Type:      model.NotificationTypeEmail,
		CreatedOn: time.Now().UTC(),
	}

	if err := s.mailSender.Send(ctx, mail.Message{
		To:      preference.ContactInfo,
		Subject: params.Subject,
		Body:    params.Body,
	}); err != nil {
		notification.Status = model.NotificationStatusFailed
		slog.Warn("failed to send email",
			slog.String("user_id", params.UserID.String()),
			slog.String("contact_info", preference.ContactInfo),
			slog.String("error", err.Error()),
		)
	} else {
		notification.Status = model.NotificationStatusSucceeded
	}

	return s.notificationRepo.Create(ctx, notification)
}

// GetNotificationHistory retrieves all non-deleted notifications for a user.
func (s *NotificationServiceImpl) GetNotificationHistory(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return s.notificationRepo.ListByUserID(ctx, userID)
}
