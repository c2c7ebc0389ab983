package events

import "time"

const CreditSubmittedTopic = "onboarding.credit.submitted.v1"

type CreditSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ClientID    string    `json:"client_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}
