package models

import (
	"strings"

	"github.com/mindfulway/intake-backend/internal/sheets"
)

// Form status values shared by both tracking tables
const (
	StatusNotStarted = "Not Started"
	StatusCompleted  = "Completed"
)

// ClientRecord is one row of the central Clients tab (columns A..J).
type ClientRecord struct {
	ClientID        string
	DisplayName     string
	AssignedFormIDs []string
	DateOfBirth     string
	EvalType        string
	AgeRange        string
	UserType        string
	CreatedAt       string
	DocumentID      string
	DocumentURL     string
}

// Row converts the record to the positional array written to the sheet
func (c ClientRecord) Row() []interface{} {
	return []interface{}{
		c.ClientID,
		c.DisplayName,
		strings.Join(c.AssignedFormIDs, ","),
		c.DateOfBirth,
		c.EvalType,
		c.AgeRange,
		c.UserType,
		c.CreatedAt,
		c.DocumentID,
		c.DocumentURL,
	}
}

// ParseClientRow converts a positional Clients row into a ClientRecord
func ParseClientRow(row []string) ClientRecord {
	rec := ClientRecord{
		ClientID:    strings.TrimSpace(sheets.Cell(row, 0)),
		DisplayName: sheets.Cell(row, 1),
		DateOfBirth: sheets.Cell(row, 3),
		EvalType:    sheets.Cell(row, 4),
		AgeRange:    sheets.Cell(row, 5),
		UserType:    sheets.Cell(row, 6),
		CreatedAt:   sheets.Cell(row, 7),
		DocumentID:  sheets.Cell(row, 8),
		DocumentURL: sheets.Cell(row, 9),
	}
	if forms := sheets.Cell(row, 2); forms != "" {
		for _, id := range strings.Split(forms, ",") {
			if id = strings.TrimSpace(id); id != "" {
				rec.AssignedFormIDs = append(rec.AssignedFormIDs, id)
			}
		}
	}
	return rec
}

// SubmissionRow is one row of a client document's Submissions tab (A..D).
type SubmissionRow struct {
	ClientID  string
	FormID    string
	Status    string
	Timestamp string
}

func (s SubmissionRow) Row() []interface{} {
	return []interface{}{s.ClientID, s.FormID, s.Status, s.Timestamp}
}

func ParseSubmissionRow(row []string) SubmissionRow {
	return SubmissionRow{
		ClientID:  sheets.Cell(row, 0),
		FormID:    sheets.Cell(row, 1),
		Status:    sheets.Cell(row, 2),
		Timestamp: sheets.Cell(row, 3),
	}
}

// MeasurementRow is one row of the central MeasurementTracking tab (A..F).
type MeasurementRow struct {
	ClientID    string
	DisplayName string
	FormID      string
	UserType    string
	Status      string
	Timestamp   string
}

func (m MeasurementRow) Row() []interface{} {
	return []interface{}{m.ClientID, m.DisplayName, m.FormID, m.UserType, m.Status, m.Timestamp}
}

func ParseMeasurementRow(row []string) MeasurementRow {
	return MeasurementRow{
		ClientID:    sheets.Cell(row, 0),
		DisplayName: sheets.Cell(row, 1),
		FormID:      sheets.Cell(row, 2),
		UserType:    sheets.Cell(row, 3),
		Status:      sheets.Cell(row, 4),
		Timestamp:   sheets.Cell(row, 5),
	}
}

// FormStatus pairs a form with its completion status for client-forms output
type FormStatus struct {
	FormID string `json:"formId"`
	Status string `json:"status"`
}
