package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiiico/vacation-planning-notifications/internal/mail"
	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

// fakePreferenceRepository keeps preferences in memory keyed by user id.
type fakePreferenceRepository struct {
	byUserID map[uuid.UUID]*model.NotificationPreference
}

func newFakePreferenceRepository() *fakePreferenceRepository {
	return &fakePreferenceRepository{byUserID: make(map[uuid.UUID]*model.NotificationPreference)}
}

func (r *fakePreferenceRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*model.NotificationPreference, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, model.ErrPreferenceNotFound
	}

	clone := *p

	return &clone, nil
}

func (r *fakePreferenceRepository) Create(_ context.Context, preference *model.NotificationPreference) (*model.NotificationPreference, error) {
	clone := *preference
	r.byUserID[preference.UserID] = &clone
	result := clone

	return &result, nil
}

func (r *fakePreferenceRepository) Update(_ context.Context, preference *model.NotificationPreference) (*model.NotificationPreference, error) {
	if _, ok := r.byUserID[preference.UserID]; !ok {
		return nil, model.ErrPreferenceNotFound
	}

	clone := *preference
	r.byUserID[preference.UserID] = &clone
	result := clone

	return &result, nil
}

// fakeNotificationRepository keeps notification records in memory.
type fakeNotificationRepository struct {
	records []*model.Notification
}

func (r *fakeNotificationRepository) Create(_ context.Context, notification *model.Notification) (*model.Notification, error) {
	clone := *notification
	r.records = append(r.records, &clone)
	result := clone

	return &result, nil
}

func (r *fakeNotificationRepository) ListByUserID(_ context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	notifications := make([]*model.Notification, 0)

	for _, n := range r.records {
		if n.UserID == userID && !n.Deleted {
			clone := *n
			notifications = append(notifications, &clone)
		}
	}

	return notifications, nil
}

// fakeTransactionManager runs the callback without a real transaction.
type fakeTransactionManager struct{}

func (fakeTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeMailSender records every attempted send and fails when err is set.
type fakeMailSender struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailSender) Send(_ context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)

	return m.err
}

func newTestService(t *testing.T) (NotificationService, *fakePreferenceRepository, *fakeNotificationRepository, *fakeMailSender) {
	t.Helper()

	preferenceRepo := newFakePreferenceRepository()
	notificationRepo := &fakeNotificationRepository{}
	mailSender := &fakeMailSender{}
	svc := NewNotificationServiceImpl(preferenceRepo, notificationRepo, fakeTransactionManager{}, mailSender)

	return svc, preferenceRepo, notificationRepo, mailSender
}

func upsertParams(userID uuid.UUID) *model.UpsertPreferenceParams {
	return &model.UpsertPreferenceParams{
		UserID:      userID,
		Type:        model.NotificationTypeEmail,
		Enabled:     true,
		ContactInfo: "a@x.com",
	}
}

func TestUpsertPreference_CreatesNewRecord(t *testing.T) {
	t.Parallel()

	svc, preferenceRepo, _, _ := newTestService(t)
	userID := uuid.New()

	preference, err := svc.UpsertPreference(context.Background(), upsertParams(userID))
	require.NoError(t, err)

	assert.Equal(t, userID, preference.UserID)
	assert.Equal(t, model.NotificationTypeEmail, preference.Type)
	assert.True(t, preference.Enabled)
	assert.Equal(t, "a@x.com", preference.ContactInfo)
	assert.NotEqual(t, uuid.Nil, preference.ID)
	assert.Equal(t, preference.CreatedOn, preference.UpdatedOn)
	assert.Len(t, preferenceRepo.byUserID, 1)
}

func TestUpsertPreference_SecondUpsertOverwritesSameRecord(t *testing.T) {
	t.Parallel()

	svc, preferenceRepo, _, _ := newTestService(t)
	userID := uuid.New()

	first, err := svc.UpsertPreference(context.Background(), upsertParams(userID))
	require.NoError(t, err)

	params := upsertParams(userID)
	params.Enabled = false
	params.ContactInfo = "b@x.com"

	second, err := svc.UpsertPreference(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, userID, second.UserID)
	assert.False(t, second.Enabled)
	assert.Equal(t, "b@x.com", second.ContactInfo)
	assert.Equal(t, first.CreatedOn, second.CreatedOn)
	assert.Len(t, preferenceRepo.byUserID, 1, "upsert must never create a second record for the same user")
}

func TestUpsertPreference_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(p *model.UpsertPreferenceParams)
		wantErr error
	}{
		{
			name:    "missing user id",
			mutate:  func(p *model.UpsertPreferenceParams) { p.UserID = uuid.Nil },
			wantErr: model.ErrInvalidUserID,
		},
		{
			name:    "unsupported type",
			mutate:  func(p *model.UpsertPreferenceParams) { p.Type = "CARRIER_PIGEON" },
			wantErr: model.ErrUnsupportedType,
		},
		{
			name:    "missing contact info",
			mutate:  func(p *model.UpsertPreferenceParams) { p.ContactInfo = "" },
			wantErr: model.ErrInvalidContactInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _, _, _ := newTestService(t)
			params := upsertParams(uuid.New())
			tt.mutate(params)

			_, err := svc.UpsertPreference(context.Background(), params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPreferenceByUserID_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)

	_, err := svc.GetPreferenceByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrPreferenceNotFound)
}

func TestChangeNotificationPreference_TogglesEnabled(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	userID := uuid.New()

	_, err := svc.UpsertPreference(context.Background(), upsertParams(userID))
	require.NoError(t, err)

	preference, err := svc.ChangeNotificationPreference(context.Background(), userID, false)
	require.NoError(t, err)
	assert.False(t, preference.Enabled)

	preference, err = svc.GetPreferenceByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, preference.Enabled)
}

func TestChangeNotificationPreference_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)

	_, err := svc.ChangeNotificationPreference(context.Background(), uuid.New(), true)
	assert.ErrorIs(t, err, model.ErrPreferenceNotFound)
}

func sendParams(userID uuid.UUID) *model.SendNotificationParams {
	return &model.SendNotificationParams{
		UserID:  userID,
		Subject: "Trip reminder",
		Body:    "Your vacation starts tomorrow.",
	}
}

func TestSendNotification_Succeeds(t *testing.T) {
	t.Parallel()

	svc, _, notificationRepo, mailSender := newTestService(t)
	userID := uuid.New()

	_, err := svc.UpsertPreference(context.Background(), upsertParams(userID))
	require.NoError(t, err)

	notification, err := svc.SendNotification(context.Background(), sendParams(userID))
	require.NoError(t, err)

	assert.Equal(t, model.NotificationStatusSucceeded, notification.Status)
	assert.Equal(t, model.NotificationTypeEmail, notification.Type)
	assert.Equal(t, userID, notification.UserID)

	require.Len(t, mailSender.sent, 1)
	assert.Equal(t, "a@x.com", mailSender.sent[0].To)
	assert.Equal(t, "Trip reminder", mailSender.sent[0].Subject)

	history, err := svc.GetNotificationHistory(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, notification.ID, history[0].ID)
	require.Len(t, notificationRepo.records, 1)
}

func TestSendNotification_MailFailureRecordedNotRaised(t *testing.T) {
	t.Parallel()

	svc, _, notificationRepo, mailSender := newTestService(t)
	mailSender.err = errors.New("smtp: connection refused")
	userID := uuid.New()

	_, err := svc.UpsertPreference(context.Background(), upsertParams(userID))
	require.NoError(t, err)

	notification, err := svc.SendNotification(context.Background(), sendParams(userID))
	require.NoError(t, err, "mail failure must not be raised to the caller")

	assert.Equal(t, model.NotificationStatusFailed, notification.Status)
	require.Len(t, notificationRepo.records, 1)
	assert.Equal(t, model.NotificationStatusFailed, notificationRepo.records[0].Status)
}

func TestSendNotification_DisabledPreferenceDeniesSend(t *testing.T) {
	t.Parallel()

	svc, _, notificationRepo, mailSender := newTestService(t)
	userID := uuid.New()

	params := upsertParams(userID)
	params.Enabled = false
	_, err := svc.UpsertPreference(context.Background(), params)
	require.NoError(t, err)

	_, err = svc.SendNotification(context.Background(), sendParams(userID))
	assert.ErrorIs(t, err, model.ErrNotificationsDisabled)
	assert.Empty(t, mailSender.sent, "no mail attempt may occur for a disabled preference")
	assert.Empty(t, notificationRepo.records)
}

func TestSendNotification_NoPreference(t *testing.T) {
	t.Parallel()

	svc, _, _, mailSender := newTestService(t)

	_, err := svc.SendNotification(context.Background(), sendParams(uuid.New()))
	assert.ErrorIs(t, err, model.ErrPreferenceNotFound)
	assert.Empty(t, mailSender.sent)
}

func TestGetNotificationHistory_ExcludesDeleted(t *testing.T) {
	t.Parallel()

	svc, _, notificationRepo, _ := newTestService(t)
	userID := uuid.New()

	notificationRepo.records = append(notificationRepo.records,
		&model.Notification{ID: uuid.New(), UserID: userID, Subject: "kept", Status: model.NotificationStatusSucceeded},
		&model.Notification{ID: uuid.New(), UserID: userID, Subject: "hidden", Status: model.NotificationStatusSucceeded, Deleted: true},
		&model.Notification{ID: uuid.New(), UserID: uuid.New(), Subject: "other user", Status: model.NotificationStatusFailed},
	)

	history, err := svc.GetNotificationHistory(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "kept", history[0].Subject)
}
