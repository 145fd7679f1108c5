package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mindfulway/intake-backend/internal/config"
	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/platform/logger"
	"github.com/mindfulway/intake-backend/internal/sheets"
	"github.com/mindfulway/intake-backend/internal/types"
)

// SubmitFormInput is one completed form: the ordered responses align
// positionally with the question list on the client document.
type SubmitFormInput struct {
	ClientID  string
	FormID    string
	Responses []types.FormResponse
	Timestamp string
}

// SubmitFormResult reports the recorded status and its timestamp
type SubmitFormResult struct {
	ClientID  string
	FormID    string
	Status    string
	Timestamp string
}

// SyncSubmission records a form submission: answers into the client
// document's form tab, then an idempotent status upsert into the client
// document's Submissions table and the central MeasurementTracking table.
//
// The answer write happens first; if it fails nothing is marked complete.
// The two status upserts are independent and are not rolled back or retried
// when one fails after the other succeeded, so the tables can transiently
// disagree until the client re-submits (safe: the upsert overwrites rather
// than duplicates). Two concurrent submissions for the same client and form
// can both miss the existing row and both append; readers take the first
// match, so the duplicate is inert.
func SyncSubmission(ctx context.Context, store sheets.Store, cfg *config.Config, log *logger.Logger, in SubmitFormInput) (*SubmitFormResult, error) {
	if in.ClientID == "" || in.FormID == "" {
		return nil, fmt.Errorf("clientId and formId are required: %w", ErrValidation)
	}

	client, err := FindClient(ctx, store, cfg.CentralSpreadsheetID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client.DocumentID == "" {
		return nil, fmt.Errorf("client %s has no spreadsheet: %w", in.ClientID, ErrValidation)
	}

	questions, err := store.GetRange(ctx, client.DocumentID, in.FormID+"!A1:A")
	if err != nil {
		return nil, fmt.Errorf("read questions for %s: %w", in.FormID, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions found for form %s: %w", in.FormID, ErrValidation)
	}
	if len(in.Responses) != len(questions) {
		return nil, fmt.Errorf("expected %d responses for form %s, got %d: %w",
			len(questions), in.FormID, len(in.Responses), ErrValidation)
	}

	ts := submissionTimestamp(in.Timestamp)

	// Step 1: answers into column B, row i aligned to question row i.
	// Overwrite in place so a re-submission replaces rather than stacks.
	answerRows := make([][]interface{}, len(in.Responses))
	for i, resp := range in.Responses {
		answerRows[i] = []interface{}{resp.CellValue()}
	}
	answersRange := fmt.Sprintf("%s!B1:B%d", in.FormID, len(answerRows))
	if err := store.Update(ctx, client.DocumentID, answersRange, answerRows); err != nil {
		return nil, fmt.Errorf("write answers for %s: %w", in.FormID, err)
	}

	// Step 2: status upsert in the client document's Submissions table.
	if err := upsertSubmissionStatus(ctx, store, client, in.FormID, ts); err != nil {
		return nil, fmt.Errorf("update submission status: %w", err)
	}

	// Step 3: status upsert in the central MeasurementTracking table. A
	// failure here leaves the two tables inconsistent; log loudly enough
	// to reconcile by re-submission.
	if err := upsertMeasurementStatus(ctx, store, cfg.CentralSpreadsheetID, client, in.FormID, ts); err != nil {
		log.Error("submission recorded but central tracking update failed",
			"client_id", in.ClientID, "form_id", in.FormID, "error", err)
		return nil, fmt.Errorf("update measurement tracking: %w", err)
	}

	return &SubmitFormResult{
		ClientID:  in.ClientID,
		FormID:    in.FormID,
		Status:    models.StatusCompleted,
		Timestamp: ts,
	}, nil
}

// upsertSubmissionStatus marks (clientID, formID) Completed in the client
// document. An existing row gets only its status and timestamp columns
// rewritten; key columns are left untouched.
func upsertSubmissionStatus(ctx context.Context, store sheets.Store, client models.ClientRecord, formID, ts string) error {
	rows, err := store.GetRange(ctx, client.DocumentID, submissionsRange)
	if err != nil {
		return err
	}

	idx := sheets.FindRow(rows, []int{0, 1}, []string{client.ClientID, formID})
	if idx == -1 {
		row := models.SubmissionRow{
			ClientID:  client.ClientID,
			FormID:    formID,
			Status:    models.StatusCompleted,
			Timestamp: ts,
		}
		return store.Append(ctx, client.DocumentID, submissionsAppendRange, [][]interface{}{row.Row()})
	}

	// Scan range starts at row 2, so sheet row = idx + 2.
	statusRange := fmt.Sprintf("%s!C%d:D%d", SubmissionsTab, idx+2, idx+2)
	return store.Update(ctx, client.DocumentID, statusRange, [][]interface{}{{models.StatusCompleted, ts}})
}

// upsertMeasurementStatus mirrors the status into the central
// MeasurementTracking table, keyed by clientID (col A) and formID (col C).
func upsertMeasurementStatus(ctx context.Context, store sheets.Store, centralID string, client models.ClientRecord, formID, ts string) error {
	rows, err := store.GetRange(ctx, centralID, measurementRange)
	if err != nil {
		return err
	}

	idx := sheets.FindRow(rows, []int{0, 2}, []string{client.ClientID, formID})
	if idx == -1 {
		row := models.MeasurementRow{
			ClientID:    client.ClientID,
			DisplayName: client.DisplayName,
			FormID:      formID,
			UserType:    client.UserType,
			Status:      models.StatusCompleted,
			Timestamp:   ts,
		}
		return store.Append(ctx, centralID, measurementAppendRange, [][]interface{}{row.Row()})
	}

	statusRange := fmt.Sprintf("MeasurementTracking!E%d:F%d", idx+2, idx+2)
	return store.Update(ctx, centralID, statusRange, [][]interface{}{{models.StatusCompleted, ts}})
}

// submissionTimestamp uses the client-supplied timestamp when it parses as
// RFC3339, else the server clock. Both tracking tables receive this one
// value so their timestamps agree within a request.
func submissionTimestamp(supplied string) string {
	if supplied != "" {
		if t, err := time.Parse(time.RFC3339, supplied); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}
