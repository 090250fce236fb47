package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-ops/internal/api/dto"
	"github.com/spec-kit/community-ops/internal/service"
	apperrors "github.com/spec-kit/community-ops/pkg/util"
)

// ReportsHandler exposes duty aggregation queries.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// UserReport GET /reports/user/:userID?from=RFC3339.
func (h *ReportsHandler) UserReport(c *fiber.Ctx) error {
	from, err := parseFrom(c.Query("from"))
	if err != nil {
		return err
	}
	userID := c.Params("userID")
	sessions := h.service.SessionsForUserInRange(c.UserContext(), userID, from)

	items := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, sessionResponse(session))
	}
	return c.JSON(fiber.Map{"data": dto.UserReportResponse{
		UserID:   userID,
		From:     from,
		Sessions: items,
		Total:    service.TotalDuration(sessions).String(),
	}})
}

// Leaderboard GET /reports/leaderboard?from=&assignment=&n=.
func (h *ReportsHandler) Leaderboard(c *fiber.Ctx) error {
	from, err := parseFrom(c.Query("from"))
	if err != nil {
		return err
	}
	n := 10
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("n must be a positive integer", nil)
		}
		n = parsed
	}

	sessions := h.service.SessionsInRange(c.UserContext(), from, c.Query("assignment"))
	entries := service.TopN(sessions, n)

	rows := make([]dto.LeaderboardRow, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, dto.LeaderboardRow{
			Rank:     i + 1,
			UserID:   entry.UserID,
			Total:    entry.Total.String(),
			Sessions: entry.Sessions,
		})
	}
	return c.JSON(fiber.Map{"data": rows})
}

func parseFrom(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	from, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("from must be RFC3339", nil)
	}
	return from, nil
}
