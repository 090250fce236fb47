package dto

import (
	"time"

	"github.com/spec-kit/community-ops/internal/domain"
)

// OpenTicketRequest payload.
type OpenTicketRequest struct {
	ChannelID string            `json:"channel_id"`
	UserID    string            `json:"user_id"`
	Type      domain.TicketType `json:"type"`
	Subject   string            `json:"subject"`
}

// CloseTicketRequest payload.
type CloseTicketRequest struct {
	ChannelID string `json:"channel_id"`
}

// SetDoneRequest payload.
type SetDoneRequest struct {
	Done bool `json:"done"`
}

// TicketResponse view of a single ticket.
type TicketResponse struct {
	ID        string            `json:"id"`
	ChannelID string            `json:"channel_id"`
	UserID    string            `json:"user_id"`
	Type      domain.TicketType `json:"type"`
	Subject   string            `json:"subject"`
	CreatedAt time.Time         `json:"created_at"`
	ClosedAt  *time.Time        `json:"closed_at"`
	Done      bool              `json:"done"`
}
