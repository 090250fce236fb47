package dto

import (
	"time"

	"github.com/spec-kit/community-ops/internal/domain"
)

// SubmitApplicationRequest payload.
type SubmitApplicationRequest struct {
	ID       string            `json:"id"`
	UserID   string            `json:"user_id"`
	Division string            `json:"division"`
	Answers  map[string]string `json:"answers"`
}

// DecisionRequest payload.
type DecisionRequest struct {
	Outcome   domain.ApplicationStatus `json:"outcome"`
	DecidedBy string                   `json:"decided_by"`
	Extra     string                   `json:"extra"`
	Override  bool                     `json:"override,omitempty"`
}

// ApplicationResponse view of a single application.
type ApplicationResponse struct {
	ID             string                   `json:"id"`
	UserID         string                   `json:"user_id"`
	Division       string                   `json:"division"`
	Answers        map[string]string        `json:"answers"`
	Status         domain.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
	DecidedAt      *time.Time               `json:"decided_at"`
	DecidedBy      *string                  `json:"decided_by"`
	DecisionReason string                   `json:"decision_reason,omitempty"`
}
