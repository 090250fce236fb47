package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/events"
	"github.com/spec-kit/community-ops/internal/repository"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// TicketService coordinates the support ticket lifecycle.
type TicketService struct {
	docs       *repository.DocumentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(docs *repository.DocumentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TicketService {
	return &TicketService{docs: docs, dispatcher: dispatcher, logger: logger}
}

// TicketOpenInput describes a new ticket hosted in a chat channel.
type TicketOpenInput struct {
	ChannelID string
	UserID    string
	Type      domain.TicketType
	Subject   string
}

// Open appends a new open ticket. At most one ticket per channel may be open
// at a time.
func (s *TicketService) Open(ctx context.Context, input TicketOpenInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.ChannelID) == "" {
		return nil, apperrors.NewInvalidRecord("channel id required", nil)
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, apperrors.NewInvalidRecord("user id required", nil)
	}
	if input.Type == "" {
		input.Type = domain.TicketTypeOther
	}

	now := time.Now()
	ticket := domain.Ticket{
		ID:        fmt.Sprintf("tkt-%s-%d", input.ChannelID, now.UnixMilli()),
		ChannelID: input.ChannelID,
		UserID:    input.UserID,
		Type:      input.Type,
		Subject:   strings.TrimSpace(input.Subject),
		CreatedAt: now,
	}

	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for _, existing := range doc.Tickets {
			if existing.ChannelID == ticket.ChannelID && existing.Open() {
				return apperrors.NewConflict("channel already has an open ticket",
					map[string]any{"channel_id": ticket.ChannelID})
			}
		}
		doc.Tickets = append(doc.Tickets, ticket)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTicketOpened,
		UserID: ticket.UserID,
		Payload: events.TicketOpenedPayload{
			TicketID:  ticket.ID,
			ChannelID: ticket.ChannelID,
			Type:      ticket.Type,
			Subject:   ticket.Subject,
		},
	})
	return &ticket, nil
}

// Close closes the channel's currently open ticket. Closing a channel with
// no open ticket reports NotFound, which makes a second close a no-op.
func (s *TicketService) Close(ctx context.Context, channelID string) (*domain.Ticket, error) {
	var closed domain.Ticket
	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Tickets {
			ticket := &doc.Tickets[i]
			if ticket.ChannelID != channelID || !ticket.Open() {
				continue
			}
			now := time.Now()
			ticket.ClosedAt = &now
			closed = *ticket
			return nil
		}
		return apperrors.NewNotFound("open ticket", map[string]any{"channel_id": channelID})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTicketClosed,
		UserID: closed.UserID,
		Payload: events.TicketClosedPayload{
			TicketID:  closed.ID,
			ChannelID: closed.ChannelID,
		},
	})
	return &closed, nil
}

// SetDone flips the secondary completion flag by ticket id, independent of
// open/closed state.
func (s *TicketService) SetDone(ctx context.Context, id string, done bool) (*domain.Ticket, error) {
	var updated domain.Ticket
	err := s.docs.Mutate(ctx, func(doc *domain.Document) error {
		for i := range doc.Tickets {
			ticket := &doc.Tickets[i]
			if ticket.ID != id {
				continue
			}
			ticket.Done = done
			updated = *ticket
			return nil
		}
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// OpenTicketForChannel returns the channel's currently open ticket.
func (s *TicketService) OpenTicketForChannel(ctx context.Context, channelID string) (*domain.Ticket, error) {
	doc := s.docs.Snapshot(ctx)
	for i := range doc.Tickets {
		if doc.Tickets[i].ChannelID == channelID && doc.Tickets[i].Open() {
			return &doc.Tickets[i], nil
		}
	}
	return nil, apperrors.NewNotFound("open ticket", map[string]any{"channel_id": channelID})
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
