package services

import (
	"context"
	"fmt"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/sheets"
	"github.com/mindfulway/intake-backend/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Spreadsheets string            `json:"spreadsheets"`
	Database     string            `json:"database"`
	Authorizer   string            `json:"authorizer,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck verifies the central spreadsheet is readable, the audit
// database responds, and the authorizer is reachable when configured.
func HealthCheck(ctx context.Context, cfg *config.Config, store sheets.Store, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Central registry reachability; one cell is enough.
	if _, err := store.GetRange(ctx, cfg.CentralSpreadsheetID, "Clients!A1:A1"); err != nil {
		result.Status = "unhealthy"
		result.Spreadsheets = "unreachable"
		result.Details["spreadsheets_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Central spreadsheet read failed: %v", err)
	} else {
		result.Spreadsheets = "ok"
	}

	// Audit database connectivity
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.Details["database_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Audit database ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; audit database ping failed: %v", err)
		}
	} else {
		result.Database = "ok"
		result.Details["database_type"] = cfg.AuditDBType
	}

	// Authorizer connectivity, only when admin auth is configured
	if cfg.AdminAuthEnabled() {
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			result.Status = "unhealthy"
			result.Authorizer = "unreachable"
			result.Details["authorizer_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Authorizer ping failed: %v", err)
			} else {
				result.ErrorMessage += fmt.Sprintf("; authorizer ping failed: %v", err)
			}
		} else {
			result.Authorizer = "ok"
		}
	}

	return result
}
