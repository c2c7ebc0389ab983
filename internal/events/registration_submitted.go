package events

import "time"

const RegistrationSubmittedTopic = "onboarding.registration.submitted.v1"

type RegistrationSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ClientID    string    `json:"client_id"`
	CompanyName string    `json:"company_name"`
	SubmittedAt time.Time `json:"submitted_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}
