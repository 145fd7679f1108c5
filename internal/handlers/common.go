package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/internal/utils"
)

// serviceError translates a service error into the standard envelope.
// Validation and not-found carry their own message; upstream spreadsheet
// failures get a generic message with the detail logged server-side only.
func serviceError(c *fiber.Ctx, log *logger.Logger, err error, genericMessage, errorType string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, err.Error())
	default:
		log.Error(genericMessage, "error", err, "url", c.OriginalURL())
		return utils.ErrorResponse(c, genericMessage, fiber.StatusInternalServerError, errorType)
	}
}
