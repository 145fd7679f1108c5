package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/internal/sheets"
	"github.com/mindfulway/intake-backend/internal/utils"
	"gorm.io/gorm"
)

// ClientHandler handles client provisioning and dashboard routes
type ClientHandler struct {
	Store sheets.Store
	DB    *gorm.DB
	Cfg   *config.Config
	Log   *logger.Logger
}

// createSheetRequest is the intake form payload
type createSheetRequest struct {
	ClientName    string   `json:"clientName"`
	DOB           string   `json:"dob"`
	EvalType      string   `json:"evalType"`
	AgeRange      string   `json:"ageRange"`
	UserType      string   `json:"userType"`
	SelectedForms []string `json:"selectedForms"`
}

// CreateSheet handles POST /create-sheet
// @Summary Create a client with an individual spreadsheet
// @Description Provisions a per-client spreadsheet, populates one tab per assigned form, and registers the client centrally
// @Tags Clients
// @Accept json
// @Produce json
// @Param body body createSheetRequest true "Intake fields"
// @Success 200 {object} utils.CreateSheetResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /create-sheet [post]
func (h *ClientHandler) CreateSheet(c *fiber.Ctx) error {
	var body createSheetRequest
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}

	result, err := services.CreateClient(c.UserContext(), h.Store, h.Cfg, h.Log, services.CreateClientInput{
		DisplayName:   body.ClientName,
		DateOfBirth:   body.DOB,
		EvalType:      body.EvalType,
		AgeRange:      body.AgeRange,
		UserType:      body.UserType,
		SelectedForms: body.SelectedForms,
	})
	if err != nil {
		return serviceError(c, h.Log, err, "Error creating client sheet", "createSheet")
	}

	services.RecordAudit(h.DB, h.Log, services.ActionClientCreate, result.ClientID, "", map[string]interface{}{
		"assignedForms": result.AssignedForms,
		"skippedForms":  result.SkippedForms,
		"failedForms":   result.FailedForms,
		"sheetId":       result.SheetID,
	})

	return c.Status(fiber.StatusOK).JSON(utils.CreateSheetResponseStruct{
		Message:       "Client created with individual sheet and form tabs",
		ClientID:      result.ClientID,
		AssignedForms: result.AssignedForms,
		SheetURL:      result.SheetURL,
		SheetID:       result.SheetID,
	})
}

// ClientForms handles GET /client-forms
// @Summary Get a client's assigned forms with completion status
// @Tags Clients
// @Produce json
// @Param clientId query string true "Client ID"
// @Success 200 {object} services.ClientFormsResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /client-forms [get]
func (h *ClientHandler) ClientForms(c *fiber.Ctx) error {
	clientID := c.Query("clientId")
	if clientID == "" {
		return utils.ErrorResponse(c, "Missing clientId query parameter", fiber.StatusBadRequest, "data.validation.input")
	}

	result, err := services.ClientForms(c.UserContext(), h.Store, h.Cfg.CentralSpreadsheetID, clientID)
	if err != nil {
		return serviceError(c, h.Log, err, "Failed to fetch client forms", "clientForms")
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
