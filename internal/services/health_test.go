package services_test

import (
	"context"
	"testing"

	"github.com/mindfulway/intake-backend/internal/services"
)

// TestHealthCheck verifies a healthy report when all dependencies respond
func TestHealthCheck(t *testing.T) {
	store, cfg, _ := setupStore(t)
	db := setupAuditDB(t)

	result := services.HealthCheck(context.Background(), cfg, store, db)
	if result.Status != "healthy" {
		t.Fatalf("Expected healthy, got %+v", result)
	}
	if result.Spreadsheets != "ok" || result.Database != "ok" {
		t.Errorf("Unexpected dependency states %+v", result)
	}
	if result.Authorizer != "" {
		t.Errorf("Expected no authorizer check when auth is disabled, got %q", result.Authorizer)
	}
}

// TestHealthCheckSpreadsheetFailure verifies an unreadable registry flips
// the report unhealthy
func TestHealthCheckSpreadsheetFailure(t *testing.T) {
	store, cfg, _ := setupStore(t)
	db := setupAuditDB(t)
	cfg.CentralSpreadsheetID = "missing-doc"

	result := services.HealthCheck(context.Background(), cfg, store, db)
	if result.Status != "unhealthy" {
		t.Fatalf("Expected unhealthy, got %+v", result)
	}
	if result.Spreadsheets != "unreachable" {
		t.Errorf("Expected spreadsheets unreachable, got %q", result.Spreadsheets)
	}
	if result.Database != "ok" {
		t.Errorf("Expected database still ok, got %q", result.Database)
	}
	if result.ErrorMessage == "" {
		t.Error("Expected an error message")
	}
}
