package analytics

import (
	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler /api/analytics
type AnalyticsHandler struct {
	Usecase AnalyticsUseCase
}

// NewAnalyticsHandler usecase 為 nil 代表沒有設定 GA
func NewAnalyticsHandler(usecase AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{Usecase: usecase}
}

// Scans 掃描次數
// @Summary Total letter scans
// @Description Page views of letter pages over the last 30 days
// @Tags Analytics
// @Produce json
// @Success 200 {object} ScanCount
// @Failure 500 {object} string "Failed to fetch analytics data"
// @Failure 503 {object} string "analytics is not configured"
// @Router /api/analytics [get]
func (h *AnalyticsHandler) Scans(c *fiber.Ctx) error {
	if h.Usecase == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": ErrNotConfigured.Error()})
	}

	count, err := h.Usecase.TotalScans(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch analytics data"})
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=60")
	return c.JSON(count)
}
