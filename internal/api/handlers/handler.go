package handlers

import (
	"strconv"

	"otodoke_life/pkg/config"
	"otodoke_life/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthResponse /healthz 回應
type HealthResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Debug   bool   `json:"debug"`
}

// DebugResponse /debug 回應
type DebugResponse struct {
	Service string `json:"service"`
	Debug   bool   `json:"debug"`
}

// ConnectCheck check service liveness
// @Summary Check service status
// @Description Liveness probe, also reports whether debug logging is on
// @Tags Shared
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Service: config.EnvConfig.WebService,
		Status:  "ok",
		Debug:   logger.Log.IsDebugMode(),
	})
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging; service, when given, must name this service
// @Tags Shared
// @Produce json
// @Param service query string false "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {object} DebugResponse
// @Failure 400 {string} string "Invalid status value"
// @Failure 404 {string} string "Unknown service"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	service := c.Query("service", config.EnvConfig.WebService)
	statusStr := c.Query("status")
	logger.Log.Info("debug", zap.String("service", service), zap.String("status", statusStr))

	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid status value")
	}
	if service != config.EnvConfig.WebService {
		return c.Status(fiber.StatusNotFound).SendString("Unknown service")
	}

	logger.Log.SetDebugMode(status)
	return c.JSON(DebugResponse{Service: service, Debug: status})
}
