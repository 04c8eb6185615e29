package event

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
	"github.com/hiiico/vacation-planning-notifications/internal/service"
)

// Dispatcher routes inbound envelopes to the notification service.
// Every known event type produces exactly one reply envelope of the
// matching *_RESPONSE type, on success and on failure alike. Unknown or
// missing event types are logged and dropped without a reply. No failure
// escapes Dispatch; the consumer loop never dies from a bad message.
type Dispatcher struct {
	notificationService service.NotificationService
	replyPublisher      ReplyPublisher
}

// NewDispatcher creates a new event dispatcher.
func NewDispatcher(notificationService service.NotificationService, replyPublisher ReplyPublisher) *Dispatcher {
	return &Dispatcher{
		notificationService: notificationService,
		replyPublisher:      replyPublisher,
	}
}

// Dispatch processes one inbound envelope.
func (d *Dispatcher) Dispatch(ctx context.Context, data []byte) {
	var envelope rawEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		slog.Error("discarding malformed envelope", slog.String("error", err.Error()))

		return
	}

	if envelope.EventType == "" {
		slog.Error("discarding envelope without eventType")

		return
	}

	switch envelope.EventType {
	case TypeUpsertNotificationPreference:
		d.handleUpsertPreference(ctx, envelope.Payload)
	case TypeNotificationRequest:
		d.handleNotificationRequest(ctx, envelope.Payload)
	default:
		slog.Warn("unknown eventType received", slog.String("event_type", envelope.EventType))
	}
}

// extractUserID pulls userId out of the raw payload so failure replies can
// name the user even when the full decode fails. Best effort only.
func extractUserID(payload json.RawMessage) uuid.UUID {
	var probe struct {
		UserID uuid.UUID `json:"userId"`
	}

	_ = json.Unmarshal(payload, &probe)

	return probe.UserID
}

func (d *Dispatcher) handleUpsertPreference(ctx context.Context, payload json.RawMessage) {
	userID := extractUserID(payload)

	var params model.UpsertPreferenceParams
	if err := json.Unmarshal(payload, &params); err != nil {
		slog.Error("failed to decode UPSERT_NOTIFICATION_PREFERENCE payload", slog.String("error", err.Error()))
		d.replyPublisher.Publish(ctx, newPreferenceFailure(userID, err))

		return
	}

	preference, err := d.notificationService.UpsertPreference(ctx, &params)
	if err != nil {
		slog.Error("failed to handle UPSERT_NOTIFICATION_PREFERENCE",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		d.replyPublisher.Publish(ctx, newPreferenceFailure(userID, err))

		return
	}

	d.replyPublisher.Publish(ctx, newPreferenceResponse(preference))
}

func (d *Dispatcher) handleNotificationRequest(ctx context.Context, payload json.RawMessage) {
	userID := extractUserID(payload)

	var params model.SendNotificationParams
	if err := json.Unmarshal(payload, &params); err != nil {
		slog.Error("failed to decode NOTIFICATION_REQUEST payload", slog.String("error", err.Error()))
		d.replyPublisher.Publish(ctx, newNotificationFailure(userID, err))

		return
	}

	notification, err := d.notificationService.SendNotification(ctx, &params)
	if err != nil {
		slog.Error("failed to handle NOTIFICATION_REQUEST",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		d.replyPublisher.Publish(ctx, newNotificationFailure(userID, err))

		return
	}

	slog.Info("processed NOTIFICATION_REQUEST",
		slog.String("user_id", notification.UserID.String()),
		slog.String("status", string(notification.Status)),
	)
	d.replyPublisher.Publish(ctx, newNotificationResponse(notification))
}
