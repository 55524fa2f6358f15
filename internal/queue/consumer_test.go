package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatActivityMemberRegistered(t *testing.T) {
	body, err := json.Marshal(MemberRegisteredEvent{
		Kind:         KindMemberRegistered,
		UserID:       7,
		Username:     "magnus",
		Email:        "magnus@club.test",
		RegisteredAt: "2026-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	line, err := formatActivity(body)
	require.NoError(t, err)
	require.Contains(t, line, "Member registered")
	require.Contains(t, line, "user_id=7")
	require.Contains(t, line, `username="magnus"`)
}

func TestFormatActivityEventRegistration(t *testing.T) {
	body, err := json.Marshal(EventRegistrationEvent{
		Kind:         KindEventRegistration,
		EventID:      3,
		EventTitle:   "Spring Blitz",
		EventType:    "tournament",
		Participants: 12,
		RegisteredAt: "2026-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	line, err := formatActivity(body)
	require.NoError(t, err)
	require.Contains(t, line, "Event registration")
	require.Contains(t, line, "participants=12")
}

func TestFormatActivityRejectsUnknownKind(t *testing.T) {
	_, err := formatActivity([]byte(`{"kind":"mystery"}`))
	require.Error(t, err)
}

func TestFormatActivityRejectsBadJSON(t *testing.T) {
	_, err := formatActivity([]byte(`{`))
	require.Error(t, err)
}
