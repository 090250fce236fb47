package domain

import "time"

// ApplicationStatus enumerates lifecycle states for personnel applications.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusDenied   ApplicationStatus = "DENIED"
)

// Decided reports whether the status is terminal.
func (s ApplicationStatus) Decided() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusDenied
}

// Application is a personnel application record. Once Status leaves PENDING
// the decision fields are set exactly once, atomically with the status.
type Application struct {
	ID             string            `json:"id"`
	UserID         string            `json:"userId"`
	Division       string            `json:"division"`
	Answers        map[string]string `json:"answers"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	DecidedAt      *time.Time        `json:"decidedAt"`
	DecidedBy      *string           `json:"decidedBy"`
	DecisionReason string            `json:"decisionReason,omitempty"`
}
