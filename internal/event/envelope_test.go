package event

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiiico/vacation-planning-notifications/internal/model"
)

func TestReplyEnvelopeWireFormat(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	body, err := json.Marshal(newPreferenceFailure(userID, errors.New("boom")))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, TypeNotificationPreferenceResponse, decoded["eventType"])

	payload, ok := decoded["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "processing failed: boom", payload["error"])
	assert.Equal(t, userID.String(), payload["userId"])
}

func TestSuccessReplyOmitsError(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(newNotificationResponse(&model.Notification{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Type:   model.NotificationTypeEmail,
		Status: model.NotificationStatusSucceeded,
	}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, TypeNotificationResponse, decoded["eventType"])

	payload, ok := decoded["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["success"])
	assert.NotContains(t, payload, "error")
	assert.Equal(t, string(model.NotificationStatusSucceeded), payload["status"])
}
