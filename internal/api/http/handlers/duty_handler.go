package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/dto"
	"github.com/spec-kit/community-ops/internal/boardcache"
	"github.com/spec-kit/community-ops/internal/domain"
	"github.com/spec-kit/community-ops/internal/service"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// DutyHandler manages duty session endpoints.
type DutyHandler struct {
	service *service.DutyService
	boards  *boardcache.Cache
}

// NewDutyHandler constructs handler.
func NewDutyHandler(dutyService *service.DutyService, boards *boardcache.Cache) *DutyHandler {
	return &DutyHandler{service: dutyService, boards: boards}
}

// ClockIn POST /duty/clock-in.
func (h *DutyHandler) ClockIn(c *fiber.Ctx) error {
	var req dto.ClockInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	session, err := h.service.ClockIn(c.UserContext(), req.UserID, req.Assignments)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": sessionResponse(*session)})
}

// ClockOut POST /duty/clock-out.
func (h *DutyHandler) ClockOut(c *fiber.Ctx) error {
	var req dto.ClockOutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" {
		return apperrors.NewValidationError("user_id required", nil)
	}
	session, err := h.service.ClockOut(c.UserContext(), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(*session)})
}

// Open GET /duty/open.
func (h *DutyHandler) Open(c *fiber.Ctx) error {
	sessions := h.service.AllOpenSessions(c.UserContext())
	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, sessionResponse(session))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Board GET /duty/board?guild_id=. Serves the rendered duty board from the
// cache when fresh, rebuilding from an open-session snapshot on a miss.
func (h *DutyHandler) Board(c *fiber.Ctx) error {
	guildID := c.Query("guild_id", boardcache.DefaultGuild)

	if board, hit, err := h.boards.Get(c.UserContext(), guildID); err == nil && hit {
		return c.JSON(fiber.Map{"data": boardResponse(board, true)})
	}

	board := boardcache.Board{
		Sessions:  h.service.AllOpenSessions(c.UserContext()),
		UpdatedAt: time.Now(),
	}
	// a cache write failure never blocks serving the snapshot
	_ = h.boards.Put(c.UserContext(), guildID, board)
	return c.JSON(fiber.Map{"data": boardResponse(board, false)})
}

func boardResponse(board boardcache.Board, cached bool) fiber.Map {
	items := make([]dto.SessionResponse, 0, len(board.Sessions))
	for _, session := range board.Sessions {
		items = append(items, sessionResponse(session))
	}
	return fiber.Map{
		"sessions":   items,
		"updated_at": board.UpdatedAt,
		"cached":     cached,
	}
}

// OpenForUser GET /duty/open/:userID.
func (h *DutyHandler) OpenForUser(c *fiber.Ctx) error {
	session, err := h.service.OpenSessionFor(c.UserContext(), c.Params("userID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(*session)})
}

func sessionResponse(session domain.DutySession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:          session.ID,
		UserID:      session.UserID,
		Assignments: session.Assignments,
		ClockIn:     session.ClockIn,
		ClockOut:    session.ClockOut,
	}
	if !session.Open() {
		resp.Duration = session.Duration().String()
	}
	return resp
}
