package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/services"
)

// FormHandler serves the embedded form catalog to the renderer
type FormHandler struct {
	Log *logger.Logger
}

// ListForms handles GET /forms
// @Summary List the embedded form definitions
// @Tags Forms
// @Produce json
// @Success 200 {array} services.FormDefinition
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /forms [get]
func (h *FormHandler) ListForms(c *fiber.Ctx) error {
	defs, err := services.LoadFormDefinitions()
	if err != nil {
		return serviceError(c, h.Log, err, "Failed to load form definitions", "listForms")
	}
	return c.Status(fiber.StatusOK).JSON(defs)
}

// GetForm handles GET /forms/:formId
// @Summary Get one embedded form definition
// @Tags Forms
// @Produce json
// @Param formId path string true "Form ID"
// @Success 200 {object} services.FormDefinition
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /forms/{formId} [get]
func (h *FormHandler) GetForm(c *fiber.Ctx) error {
	def, err := services.FindFormDefinition(c.Params("formId"))
	if err != nil {
		return serviceError(c, h.Log, err, "Failed to load form definition", "getForm")
	}
	return c.Status(fiber.StatusOK).JSON(def)
}
