// Package domain holds the lifecycle vocabulary shared by the client profile
// and the registration form, which mirror each other's status.
package domain

// Registration / profile lifecycle.
const (
	StatusCreated         = "CREATED"
	StatusCredentialsSent = "CREDENTIALS_SENT"
	StatusSent            = "SENT"
	StatusFinished        = "FINISHED"
)

// Credit application lifecycle.
const (
	CreditStatusDraft     = "draft"
	CreditStatusSubmitted = "submitted"
)

// Reopen request flags on the client profile.
const (
	RegReopenPending    = "REG_REOPEN_PENDING"
	CreditReopenPending = "CREDIT_REOPEN_PENDING"
)

// Credit access request states.
const (
	CreditRequestNone      = "none"
	CreditRequestRequested = "requested"
	CreditRequestApproved  = "approved"
)

// IsAllowedStatusTransition is the guard table for the form lifecycle.
// FINISHED is terminal except for the admin-approved reopen back to SENT.
func IsAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusCreated:
		return targetStatus == StatusCredentialsSent
	case StatusCredentialsSent:
		return targetStatus == StatusSent
	case StatusSent:
		return targetStatus == StatusFinished
	case StatusFinished:
		return targetStatus == StatusSent
	default:
		return false
	}
}
