package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/dto"
	"github.com/spec-kit/community-ops/internal/auth"
	"github.com/spec-kit/community-ops/internal/config"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// AuthHandler issues dashboard operator tokens.
type AuthHandler struct {
	tokens *auth.TokenManager
	cfg    config.AuthConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(tokens *auth.TokenManager, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.OperatorID == "" || req.Password == "" {
		return apperrors.NewValidationError("operator_id and password required", nil)
	}
	if req.OperatorID != h.cfg.OperatorID || h.cfg.OperatorPasswordHash == "" {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(h.cfg.OperatorPasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.OperatorID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{Token: token, ExpiresAt: expiresAt}})
}
