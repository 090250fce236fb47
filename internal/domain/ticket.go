package domain

import "time"

// TicketType enumerates the supported ticket categories.
type TicketType string

const (
	TicketTypeSupport TicketType = "SUPPORT"
	TicketTypeReport  TicketType = "REPORT"
	TicketTypeAppeal  TicketType = "APPEAL"
	TicketTypePartner TicketType = "PARTNER"
	TicketTypeOther   TicketType = "OTHER"
)

// Ticket is a support ticket hosted in a chat channel. ClosedAt is nil while
// the ticket is open; at most one ticket per ChannelID may be open at a time.
// Done is a secondary completion flag independent of open/closed state.
type Ticket struct {
	ID        string     `json:"id"`
	ChannelID string     `json:"channelId"`
	UserID    string     `json:"userId"`
	Type      TicketType `json:"type"`
	Subject   string     `json:"subject"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt"`
	Done      bool       `json:"done"`
}

// Open reports whether the ticket has not been closed yet.
func (t Ticket) Open() bool {
	return t.ClosedAt == nil
}
