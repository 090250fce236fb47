package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/dto"
	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/service"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// ApplicationsHandler manages personnel application endpoints.
type ApplicationsHandler struct {
	service *service.ApplicationService
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService) *ApplicationsHandler {
	return &ApplicationsHandler{service: applicationService}
}

// Submit POST /applications.
func (h *ApplicationsHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	app, err := h.service.Submit(c.UserContext(), service.ApplicationSubmitInput{
		ID:       req.ID,
		UserID:   req.UserID,
		Division: req.Division,
		Answers:  req.Answers,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": applicationResponse(app)})
}

// Latest GET /applications/latest?user_id=.
func (h *ApplicationsHandler) Latest(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return apperrors.NewValidationError("user_id query parameter required", nil)
	}
	app, err := h.service.FindLatestForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

// Decide POST /applications/:id/decision.
func (h *ApplicationsHandler) Decide(c *fiber.Ctx) error {
	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	app, err := h.service.Decide(c.UserContext(), service.DecisionInput{
		ApplicationID: c.Params("id"),
		Outcome:       req.Outcome,
		DecidedBy:     req.DecidedBy,
		Extra:         req.Extra,
		Override:      req.Override,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(app)})
}

func applicationResponse(app *domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             app.ID,
		UserID:         app.UserID,
		Division:       app.Division,
		Answers:        app.Answers,
		Status:         app.Status,
		CreatedAt:      app.CreatedAt,
		DecidedAt:      app.DecidedAt,
		DecidedBy:      app.DecidedBy,
		DecisionReason: app.DecisionReason,
	}
}
