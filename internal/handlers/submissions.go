package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/internal/sheets"
	"github.com/mindfulway/intake-backend/internal/types"
	"github.com/mindfulway/intake-backend/internal/utils"
	"gorm.io/gorm"
)

// SubmissionHandler handles form submission routes
type SubmissionHandler struct {
	Store sheets.Store
	DB    *gorm.DB
	Cfg   *config.Config
	Log   *logger.Logger
}

// submitFormRequest is one completed form from the renderer
type submitFormRequest struct {
	ClientID  string               `json:"clientId"`
	FormID    string               `json:"formId"`
	Responses []types.FormResponse `json:"responses"`
	Timestamp string               `json:"timestamp"`
}

// SubmitForm handles POST /submit-form
// @Summary Submit a completed form
// @Description Writes the ordered responses into the client document and marks the form Completed in both tracking tables
// @Tags Submissions
// @Accept json
// @Produce json
// @Param body body submitFormRequest true "Submission"
// @Success 200 {object} utils.SubmitFormResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /submit-form [post]
func (h *SubmissionHandler) SubmitForm(c *fiber.Ctx) error {
	var body submitFormRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	result, err := services.SyncSubmission(c.UserContext(), h.Store, h.Cfg, h.Log, services.SubmitFormInput{
		ClientID:  body.ClientID,
		FormID:    body.FormID,
		Responses: body.Responses,
		Timestamp: body.Timestamp,
	})
	if err != nil {
		return serviceError(c, h.Log, err, "Error processing form submission", "submitForm")
	}

	services.RecordAudit(h.DB, h.Log, services.ActionFormSubmit, result.ClientID, result.FormID, map[string]interface{}{
		"status":    models.StatusCompleted,
		"timestamp": result.Timestamp,
	})

	return c.Status(fiber.StatusOK).JSON(utils.SubmitFormResponseStruct{
		Message:  "Form submission received",
		ClientID: result.ClientID,
		FormID:   result.FormID,
		Status:   result.Status,
	})
}
