package models

import (
	"reflect"
	"testing"
)

// TestClientRecordRow verifies the positional layout of a Clients row
func TestClientRecordRow(t *testing.T) {
	rec := ClientRecord{
		ClientID:        "jane_doe_1700000000000",
		DisplayName:     "Jane Doe",
		AssignedFormIDs: []string{"gad7", "phq9"},
		DateOfBirth:     "1990-04-12",
		EvalType:        "initial",
		AgeRange:        "adult",
		UserType:        "self",
		CreatedAt:       "2026-08-30T10:00:00Z",
		DocumentID:      "sheet-123",
		DocumentURL:     "https://docs.google.com/spreadsheets/d/sheet-123",
	}

	row := rec.Row()
	if len(row) != 10 {
		t.Fatalf("Expected 10 columns, got %d", len(row))
	}
	if row[0] != "jane_doe_1700000000000" {
		t.Errorf("Expected clientId in column A, got %v", row[0])
	}
	if row[2] != "gad7,phq9" {
		t.Errorf("Expected comma-joined forms in column C, got %v", row[2])
	}
	if row[8] != "sheet-123" {
		t.Errorf("Expected sheet id in column I, got %v", row[8])
	}
}

// TestParseClientRow verifies the round trip from a positional row
func TestParseClientRow(t *testing.T) {
	row := []string{
		"jane_doe_1700000000000", "Jane Doe", "gad7, phq9,", "1990-04-12",
		"initial", "adult", "self", "2026-08-30T10:00:00Z", "sheet-123",
		"https://docs.google.com/spreadsheets/d/sheet-123",
	}

	rec := ParseClientRow(row)
	if rec.ClientID != "jane_doe_1700000000000" {
		t.Errorf("Unexpected client id %q", rec.ClientID)
	}
	if rec.DisplayName != "Jane Doe" {
		t.Errorf("Unexpected display name %q", rec.DisplayName)
	}
	if !reflect.DeepEqual(rec.AssignedFormIDs, []string{"gad7", "phq9"}) {
		t.Errorf("Expected trimmed form ids, got %v", rec.AssignedFormIDs)
	}
	if rec.DocumentID != "sheet-123" {
		t.Errorf("Unexpected document id %q", rec.DocumentID)
	}
}

// TestParseClientRowRagged verifies a short row parses with empty fields
func TestParseClientRowRagged(t *testing.T) {
	rec := ParseClientRow([]string{"jane_doe_1700000000000", "Jane Doe"})
	if rec.ClientID != "jane_doe_1700000000000" {
		t.Errorf("Unexpected client id %q", rec.ClientID)
	}
	if rec.AssignedFormIDs != nil {
		t.Errorf("Expected no assigned forms, got %v", rec.AssignedFormIDs)
	}
	if rec.DocumentID != "" {
		t.Errorf("Expected empty document id, got %q", rec.DocumentID)
	}
}

// TestSubmissionAndMeasurementRows verifies the tracking row layouts
func TestSubmissionAndMeasurementRows(t *testing.T) {
	sub := SubmissionRow{
		ClientID:  "jane_doe_1700000000000",
		FormID:    "gad7",
		Status:    StatusCompleted,
		Timestamp: "2026-08-30T10:00:00Z",
	}
	if row := sub.Row(); len(row) != 4 || row[2] != StatusCompleted {
		t.Errorf("Unexpected submission row %v", row)
	}
	back := ParseSubmissionRow([]string{"jane_doe_1700000000000", "gad7", StatusCompleted, "2026-08-30T10:00:00Z"})
	if back != sub {
		t.Errorf("Submission round trip mismatch: %+v", back)
	}

	meas := MeasurementRow{
		ClientID:    "jane_doe_1700000000000",
		DisplayName: "Jane Doe",
		FormID:      "gad7",
		UserType:    "self",
		Status:      StatusNotStarted,
		Timestamp:   "2026-08-30T10:00:00Z",
	}
	if row := meas.Row(); len(row) != 6 || row[2] != "gad7" || row[4] != StatusNotStarted {
		t.Errorf("Unexpected measurement row %v", row)
	}
}
