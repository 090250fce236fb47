package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/dto"
	"github.com/spec-kit/community-ops/internal/guildconfig"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// GuildsHandler manages per-guild configuration endpoints.
type GuildsHandler struct {
	store *guildconfig.Store
}

// NewGuildsHandler constructs handler.
func NewGuildsHandler(store *guildconfig.Store) *GuildsHandler {
	return &GuildsHandler{store: store}
}

// Get GET /guilds/:guildID/config.
func (h *GuildsHandler) Get(c *fiber.Ctx) error {
	guildID := c.Params("guildID")
	cfg, ok := h.store.Get(guildID)
	if !ok {
		return apperrors.NewNotFound("guild config", map[string]any{"guild_id": guildID})
	}
	return c.JSON(fiber.Map{"data": guildConfigResponse(cfg)})
}

// Put PUT /guilds/:guildID/config.
func (h *GuildsHandler) Put(c *fiber.Ctx) error {
	var req dto.GuildConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	cfg := guildconfig.GuildConfig{
		GuildID:          c.Params("guildID"),
		StaffRoleID:      req.StaffRoleID,
		DutyRoleID:       req.DutyRoleID,
		TicketCategoryID: req.TicketCategoryID,
		DutyBoardChannel: req.DutyBoardChannel,
		LogChannelID:     req.LogChannelID,
	}
	if err := h.store.Put(c.UserContext(), cfg); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": guildConfigResponse(cfg)})
}

func guildConfigResponse(cfg guildconfig.GuildConfig) dto.GuildConfigResponse {
	return dto.GuildConfigResponse{
		GuildID:          cfg.GuildID,
		StaffRoleID:      cfg.StaffRoleID,
		DutyRoleID:       cfg.DutyRoleID,
		TicketCategoryID: cfg.TicketCategoryID,
		DutyBoardChannel: cfg.DutyBoardChannel,
		LogChannelID:     cfg.LogChannelID,
	}
}
