package events

import (
	"time"

	"github.com/spec-kit/community-ops/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventApplicationSubmitted EventType = "application_submitted"
	EventApplicationDecided   EventType = "application_decided"
	EventTicketOpened         EventType = "ticket_opened"
	EventTicketClosed         EventType = "ticket_closed"
	EventDutyClockIn          EventType = "duty_clock_in"
	EventDutyClockOut         EventType = "duty_clock_out"
)

// Event represents a domain event emitted by the lifecycle services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	ApplicationID string `json:"application_id"`
	Division      string `json:"division"`
}

// ApplicationDecidedPayload payload.
type ApplicationDecidedPayload struct {
	ApplicationID string                   `json:"application_id"`
	Status        domain.ApplicationStatus `json:"status"`
	DecidedBy     string                   `json:"decided_by"`
	Override      bool                     `json:"override,omitempty"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	TicketID  string            `json:"ticket_id"`
	ChannelID string            `json:"channel_id"`
	Type      domain.TicketType `json:"type"`
	Subject   string            `json:"subject"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	TicketID  string `json:"ticket_id"`
	ChannelID string `json:"channel_id"`
}

// DutyClockPayload payload for clock-in and clock-out events.
type DutyClockPayload struct {
	SessionID   string        `json:"session_id"`
	Assignments []string      `json:"assignments"`
	Duration    time.Duration `json:"duration,omitempty"`
}
