package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/sheets"
)

// CreateClientInput carries the intake form fields for a new client
type CreateClientInput struct {
	DisplayName   string
	DateOfBirth   string
	EvalType      string
	AgeRange      string
	UserType      string
	SelectedForms []string
}

// CreateClientResult reports what provisioning produced
type CreateClientResult struct {
	ClientID      string
	AssignedForms []string
	SheetID       string
	SheetURL      string
	SkippedForms  []string
	FailedForms   []string
}

// CreateClient provisions a new client: a per-client spreadsheet seeded
// with a Submissions status table, one tab per assigned form populated from
// the central catalog, and a registry row in the central Clients tab.
//
// The operator share and per-form population are non-fatal: a failure there
// is logged and reported in the result, but the client record stands.
func CreateClient(ctx context.Context, store sheets.Store, cfg *config.Config, log *logger.Logger, in CreateClientInput) (*CreateClientResult, error) {
	name := strings.TrimSpace(in.DisplayName)
	forms := normalizeFormIDs(in.SelectedForms)
	if name == "" || len(forms) == 0 {
		return nil, fmt.Errorf("clientName and selectedForms are required: %w", ErrValidation)
	}

	now := time.Now().UTC()
	clientID := newClientID(name, now)

	sheetID, sheetURL, err := store.CreateSpreadsheet(ctx, fmt.Sprintf("Client_%s_Submissions", clientID), SubmissionsTab)
	if err != nil {
		return nil, fmt.Errorf("create client spreadsheet: %w", err)
	}
	log.Info("client spreadsheet created", "client_id", clientID, "sheet_id", sheetID)

	// Sharing is best effort; the service account keeps write access either way.
	if cfg.OperatorEmail != "" {
		if err := store.GrantWriter(ctx, sheetID, cfg.OperatorEmail); err != nil {
			log.Warn("failed to share client spreadsheet", "sheet_id", sheetID, "error", err)
		}
	}

	header := [][]interface{}{{"ClientID", "FormID", "Status", "Timestamp"}}
	if err := store.Append(ctx, sheetID, submissionsAppendRange, header); err != nil {
		return nil, fmt.Errorf("seed submissions header: %w", err)
	}

	record := models.ClientRecord{
		ClientID:        clientID,
		DisplayName:     name,
		AssignedFormIDs: forms,
		DateOfBirth:     in.DateOfBirth,
		EvalType:        in.EvalType,
		AgeRange:        in.AgeRange,
		UserType:        in.UserType,
		CreatedAt:       now.Format(time.RFC3339),
		DocumentID:      sheetID,
		DocumentURL:     sheetURL,
	}
	if err := store.Append(ctx, cfg.CentralSpreadsheetID, clientsAppendRange, [][]interface{}{record.Row()}); err != nil {
		return nil, fmt.Errorf("register client: %w", err)
	}

	result := &CreateClientResult{
		ClientID:      clientID,
		AssignedForms: forms,
		SheetID:       sheetID,
		SheetURL:      sheetURL,
	}

	// Each form is populated independently; one bad catalog tab must not
	// sink the rest of the intake.
	for _, formID := range forms {
		populated, err := populateFormTab(ctx, store, cfg, record, formID)
		switch {
		case err != nil:
			log.Error("failed to populate form tab", "client_id", clientID, "form_id", formID, "error", err)
			result.FailedForms = append(result.FailedForms, formID)
		case !populated:
			log.Warn("no questions found for form, skipping", "client_id", clientID, "form_id", formID)
			result.SkippedForms = append(result.SkippedForms, formID)
		}
	}

	return result, nil
}

// populateFormTab copies a form's questions from the central catalog into a
// new tab on the client document and seeds a Not Started status in both
// tracking tables. Returns false when the catalog has no questions.
func populateFormTab(ctx context.Context, store sheets.Store, cfg *config.Config, client models.ClientRecord, formID string) (bool, error) {
	questions, err := FetchQuestions(ctx, store, cfg.CentralSpreadsheetID, formID)
	if err != nil {
		return false, err
	}
	if len(questions) == 0 {
		return false, nil
	}

	if err := store.AddTab(ctx, client.DocumentID, formID); err != nil {
		return false, err
	}

	questionRows := make([][]interface{}, len(questions))
	for i, q := range questions {
		questionRows[i] = []interface{}{q}
	}
	if err := store.Append(ctx, client.DocumentID, formID+"!A1", questionRows); err != nil {
		return false, err
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	sub := models.SubmissionRow{
		ClientID:  client.ClientID,
		FormID:    formID,
		Status:    models.StatusNotStarted,
		Timestamp: ts,
	}
	if err := store.Append(ctx, client.DocumentID, submissionsAppendRange, [][]interface{}{sub.Row()}); err != nil {
		return false, err
	}

	tracking := models.MeasurementRow{
		ClientID:    client.ClientID,
		DisplayName: client.DisplayName,
		FormID:      formID,
		UserType:    client.UserType,
		Status:      models.StatusNotStarted,
		Timestamp:   ts,
	}
	if err := store.Append(ctx, cfg.CentralSpreadsheetID, measurementAppendRange, [][]interface{}{tracking.Row()}); err != nil {
		return false, err
	}

	return true, nil
}

// newClientID derives a registry key from the display name and creation
// time: lower-cased, whitespace runs collapsed to underscores, suffixed
// with unix millis so same-named clients stay distinct.
func newClientID(displayName string, now time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(displayName)), "_")
	return slug + "_" + strconv.FormatInt(now.UnixMilli(), 10)
}

func normalizeFormIDs(formIDs []string) []string {
	out := make([]string, 0, len(formIDs))
	for _, id := range formIDs {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
