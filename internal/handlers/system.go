package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/internal/sheets"
	"gorm.io/gorm"
)

// SystemHandler handles liveness and health routes
type SystemHandler struct {
	Store sheets.Store
	DB    *gorm.DB
	Cfg   *config.Config
	Log   *logger.Logger
}

// Ping handles GET /ping
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *SystemHandler) Ping(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "pong"})
}

// Health handles GET /health
// @Summary Composite health check
// @Description Checks central spreadsheet readability, audit database connectivity, and the authorizer when configured
// @Tags System
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Cfg, h.Store, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
