package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/handlers"
	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/services"
	"github.com/mindfulway/intake-backend/tests/helpers"
	"gorm.io/gorm"
)

const centralID = "central"

// setupApp builds a Fiber app with the intake routes over a fake
// spreadsheet store and an in-memory audit database.
func setupApp(t *testing.T) (*fiber.App, *helpers.FakeStore, *gorm.DB) {
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
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditEvent{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		CentralSpreadsheetID: centralID,
		DriveFolderID:        "folder-1",
		OperatorEmail:        "ops@example.test",
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	app := fiber.New()

	clientHandler := &handlers.ClientHandler{Store: store, DB: db, Cfg: cfg, Log: log}
	submissionHandler := &handlers.SubmissionHandler{Store: store, DB: db, Cfg: cfg, Log: log}
	formHandler := &handlers.FormHandler{Log: log}
	systemHandler := &handlers.SystemHandler{Store: store, DB: db, Cfg: cfg, Log: log}

	app.Get("/ping", systemHandler.Ping)
	app.Get("/health", systemHandler.Health)
	app.Get("/forms", formHandler.ListForms)
	app.Get("/forms/:formId", formHandler.GetForm)
	app.Post("/create-sheet", clientHandler.CreateSheet)
	app.Get("/client-forms", clientHandler.ClientForms)
	app.Post("/submit-form", submissionHandler.SubmitForm)

	return app, store, db
}

// createJane provisions a client through the API and returns the response
func createJane(t *testing.T, app *fiber.App) map[string]interface{} {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{
		"clientName":    "Jane Doe",
		"dob":           "1990-04-12",
		"evalType":      "initial",
		"ageRange":      "adult",
		"userType":      "self",
		"selectedForms": []string{"gad7"},
	})
	req := httptest.NewRequest("POST", "/create-sheet", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	return result
}

// TestPing tests the GET /ping endpoint
func TestPing(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result map[string]string
	helpers.ParseJSON(t, resp, &result)
	if result["message"] != "pong" {
		t.Errorf("Expected pong, got %q", result["message"])
	}
}

// TestHealth tests the GET /health endpoint
func TestHealth(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result services.HealthCheckResult
	helpers.ParseJSON(t, resp, &result)
	if result.Status != "healthy" {
		t.Errorf("Expected healthy, got %+v", result)
	}
}

// TestCreateSheet tests the POST /create-sheet endpoint
func TestCreateSheet(t *testing.T) {
	app, store, db := setupApp(t)

	result := createJane(t, app)
	if result["message"] != "Client created with individual sheet and form tabs" {
		t.Errorf("Unexpected message %v", result["message"])
	}
	clientID, _ := result["clientId"].(string)
	if clientID == "" {
		t.Fatal("Expected clientId in response")
	}
	sheetID, _ := result["sheetId"].(string)
	if sheetID == "" || result["sheetUrl"] == "" {
		t.Errorf("Expected sheet coordinates, got %v", result)
	}

	// The client document exists with the form tab populated
	if !store.HasTab(sheetID, "gad7") {
		t.Error("Expected gad7 tab on the client document")
	}

	// The creation was audited
	events, err := services.RecentAuditEvents(db, services.ActionClientCreate, 10)
	if err != nil {
		t.Fatalf("Failed to query audit events: %v", err)
	}
	if len(events) != 1 || events[0].ClientID != clientID {
		t.Errorf("Expected one client.create audit event for %s, got %+v", clientID, events)
	}
}

// TestCreateSheetValidation tests rejected intake payloads
func TestCreateSheetValidation(t *testing.T) {
	app, _, _ := setupApp(t)

	// Missing selectedForms
	body, _ := json.Marshal(map[string]interface{}{"clientName": "Jane Doe"})
	req := httptest.NewRequest("POST", "/create-sheet", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	var envelope map[string]interface{}
	helpers.ParseJSON(t, resp, &envelope)
	if envelope["ok"] != false || envelope["type"] != "data.validation.input" {
		t.Errorf("Unexpected error envelope %v", envelope)
	}

	// Malformed JSON body
	req = httptest.NewRequest("POST", "/create-sheet", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}

// TestClientForms tests the GET /client-forms endpoint
func TestClientForms(t *testing.T) {
	app, _, _ := setupApp(t)
	created := createJane(t, app)
	clientID := created["clientId"].(string)

	resp, err := app.Test(httptest.NewRequest("GET", "/client-forms?clientId="+clientID, nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result services.ClientFormsResult
	helpers.ParseJSON(t, resp, &result)
	if result.ClientName != "Jane Doe" {
		t.Errorf("Expected Jane Doe, got %q", result.ClientName)
	}
	if len(result.AssignedForms) != 1 || result.AssignedForms[0].Status != models.StatusNotStarted {
		t.Errorf("Expected gad7 Not Started, got %v", result.AssignedForms)
	}
}

// TestClientFormsMissingParam tests the missing clientId case
func TestClientFormsMissingParam(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/client-forms", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)

	var envelope map[string]interface{}
	helpers.ParseJSON(t, resp, &envelope)
	if envelope["message"] != "Missing clientId query parameter" {
		t.Errorf("Unexpected message %v", envelope["message"])
	}
}

// TestClientFormsUnknownClient tests the 404 case
func TestClientFormsUnknownClient(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/client-forms?clientId=nobody_1", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

// TestSubmitForm tests the POST /submit-form endpoint end to end
func TestSubmitForm(t *testing.T) {
	app, store, db := setupApp(t)
	created := createJane(t, app)
	clientID := created["clientId"].(string)
	sheetID := created["sheetId"].(string)

	body, _ := json.Marshal(map[string]interface{}{
		"clientId": clientID,
		"formId":   "gad7",
		"responses": []interface{}{
			map[string]interface{}{"label": "Not at all", "value": 0},
			"Several days",
		},
		"timestamp": "2026-08-30T10:00:00Z",
	})
	req := httptest.NewRequest("POST", "/submit-form", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var result map[string]interface{}
	helpers.ParseJSON(t, resp, &result)
	if result["status"] != models.StatusCompleted {
		t.Errorf("Expected Completed, got %v", result["status"])
	}
	if result["message"] != "Form submission received" {
		t.Errorf("Unexpected message %v", result["message"])
	}

	// Answers written, status flipped in both tables
	form := store.Tab(sheetID, "gad7")
	if form[0][1] != "Not at all" || form[1][1] != "Several days" {
		t.Errorf("Unexpected answers %v", form)
	}
	subs := store.Tab(sheetID, "Submissions")
	if subs[1][2] != models.StatusCompleted {
		t.Errorf("Expected Completed submission row, got %v", subs[1])
	}
	tracking := store.Tab(centralID, "MeasurementTracking")
	if tracking[1][4] != models.StatusCompleted {
		t.Errorf("Expected Completed tracking row, got %v", tracking[1])
	}

	// The submission was audited
	events, err := services.RecentAuditEvents(db, services.ActionFormSubmit, 10)
	if err != nil {
		t.Fatalf("Failed to query audit events: %v", err)
	}
	if len(events) != 1 || events[0].FormID != "gad7" {
		t.Errorf("Expected one form.submit audit event, got %+v", events)
	}
}

// TestSubmitFormCountMismatch tests rejection of partial submissions
func TestSubmitFormCountMismatch(t *testing.T) {
	app, _, _ := setupApp(t)
	created := createJane(t, app)

	body, _ := json.Marshal(map[string]interface{}{
		"clientId":  created["clientId"],
		"formId":    "gad7",
		"responses": []interface{}{"Several days"},
	})
	req := httptest.NewRequest("POST", "/submit-form", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
}

// TestSubmitFormUnknownClient tests the 404 case
func TestSubmitFormUnknownClient(t *testing.T) {
	app, _, _ := setupApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"clientId":  "nobody_1",
		"formId":    "gad7",
		"responses": []interface{}{"Several days", "Not at all"},
	})
	req := httptest.NewRequest("POST", "/submit-form", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

// TestListForms tests the GET /forms endpoint
func TestListForms(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/forms", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var defs []services.FormDefinition
	helpers.ParseJSON(t, resp, &defs)
	if len(defs) < 2 {
		t.Fatalf("Expected at least 2 form definitions, got %d", len(defs))
	}
}

// TestGetForm tests the GET /forms/:formId endpoint
func TestGetForm(t *testing.T) {
	app, _, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/forms/phq9", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var def services.FormDefinition
	helpers.ParseJSON(t, resp, &def)
	if def.ID != "phq9" || len(def.Questions) != 9 {
		t.Errorf("Unexpected definition %+v", def)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/forms/nope", nil))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}
