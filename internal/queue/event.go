// Package queue defines message payloads exchanged over the message broker.
package queue

// Activity kinds carried in the club.activity queue.
const (
	KindMemberRegistered  = "member.registered"
	KindEventRegistration = "event.registration"
)

// MemberRegisteredEvent is published when a visitor completes account
// registration. Downstream consumers can log or notify without touching
// the CMS.
type MemberRegisteredEvent struct {
	Kind         string `json:"kind"`
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

// EventRegistrationEvent is published when a member signs up for a club
// event and the participant counter has been bumped.
type EventRegistrationEvent struct {
	Kind         string `json:"kind"`
	EventID      int64  `json:"event_id"`
	EventTitle   string `json:"event_title"`
	EventType    string `json:"event_type"`
	Participants int64  `json:"participants"`
	RegisteredAt string `json:"registered_at"`
}
