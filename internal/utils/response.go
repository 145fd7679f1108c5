package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// CreateSheetResponseStruct defines the schema for client creation responses
type CreateSheetResponseStruct struct {
	Message       string   `json:"message"`
	ClientID      string   `json:"clientId"`
	AssignedForms []string `json:"assignedForms"`
	SheetURL      string   `json:"sheetUrl"`
	SheetID       string   `json:"sheetId"`
}

// SubmitFormResponseStruct defines the schema for submission acknowledgements
type SubmitFormResponseStruct struct {
	Message  string `json:"message"`
	ClientID string `json:"clientId"`
	FormID   string `json:"formId"`
	Status   string `json:"status"`
}
