package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/dto"
	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/service"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// Open POST /tickets.
func (h *TicketsHandler) Open(c *fiber.Ctx) error {
	var req dto.OpenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.Open(c.UserContext(), service.TicketOpenInput{
		ChannelID: req.ChannelID,
		UserID:    req.UserID,
		Type:      req.Type,
		Subject:   req.Subject,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// Close POST /tickets/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	var req dto.CloseTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ChannelID == "" {
		return apperrors.NewValidationError("channel_id required", nil)
	}
	ticket, err := h.service.Close(c.UserContext(), req.ChannelID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// SetDone POST /tickets/:id/done.
func (h *TicketsHandler) SetDone(c *fiber.Ctx) error {
	var req dto.SetDoneRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.SetDone(c.UserContext(), c.Params("id"), req.Done)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:        ticket.ID,
		ChannelID: ticket.ChannelID,
		UserID:    ticket.UserID,
		Type:      ticket.Type,
		Subject:   ticket.Subject,
		CreatedAt: ticket.CreatedAt,
		ClosedAt:  ticket.ClosedAt,
		Done:      ticket.Done,
	}
}
