package events

import "time"

const ClientCreatedTopic = "onboarding.client.lifecycle.v1"

type ClientCreatedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ClientID    string    `json:"client_id"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name"`
	OccurredAt  time.Time `json:"occurred_at"`
}
