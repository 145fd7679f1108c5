package services_test

import (
	"testing"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/tests/helpers"
)

const centralID = "central"

// setupStore builds a fake store seeded with the central spreadsheet:
// empty registry and tracking tables plus two catalog question tabs.
func setupStore(t *testing.T) (*helpers.FakeStore, *config.Config, *logger.Logger) {
	t.Helper()

	store := helpers.NewFakeStore()
	store.Seed(centralID, "Clients", [][]string{
		{"ClientID", "Name", "Forms", "DOB", "EvalType", "AgeRange", "UserType", "CreatedAt", "SheetID", "SheetURL"},
	})
	store.Seed(centralID, "MeasurementTracking", [][]string{
		{"ClientID", "Name", "FormID", "UserType", "Status", "Timestamp"},
	})
	store.Seed(centralID, "gad7_Questions", [][]string{
		{"Questions"},
		{"Feeling nervous, anxious, or on edge"},
		{"Not being able to stop or control worrying"},
		{"Worrying too much about different things"},
	})
	store.Seed(centralID, "phq9_Questions", [][]string{
		{"Little interest or pleasure in doing things"},
		{"Feeling down, depressed, or hopeless"},
	})

	cfg := &config.Config{
		CentralSpreadsheetID: centralID,
		DriveFolderID:        "folder-1",
		OperatorEmail:        "ops@example.test",
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	return store, cfg, log
}
