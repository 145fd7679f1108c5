package services

import (
	"context"
	"fmt"

	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/sheets"
)

// FindClient scans the central Clients tab for the record keyed by clientID.
// Returns ErrNotFound when no row matches.
func FindClient(ctx context.Context, store sheets.Store, centralID, clientID string) (models.ClientRecord, error) {
	rows, err := store.GetRange(ctx, centralID, clientsRange)
	if err != nil {
		return models.ClientRecord{}, fmt.Errorf("read client registry: %w", err)
	}

	idx := sheets.FindRow(rows, []int{0}, []string{clientID})
	if idx == -1 {
		return models.ClientRecord{}, fmt.Errorf("client %q: %w", clientID, ErrNotFound)
	}
	return models.ParseClientRow(rows[idx]), nil
}

// ClientFormsResult is the client dashboard payload: the client's assigned
// forms with their current completion status.
type ClientFormsResult struct {
	ClientID      string              `json:"clientId"`
	ClientName    string              `json:"clientName"`
	AssignedForms []models.FormStatus `json:"assignedForms"`
}

// ClientForms resolves a client and reports the status of every assigned
// form from the client document's Submissions tab. Forms without a status
// row default to Not Started.
func ClientForms(ctx context.Context, store sheets.Store, centralID, clientID string) (*ClientFormsResult, error) {
	client, err := FindClient(ctx, store, centralID, clientID)
	if err != nil {
		return nil, err
	}

	result := &ClientFormsResult{
		ClientID:      client.ClientID,
		ClientName:    client.DisplayName,
		AssignedForms: make([]models.FormStatus, 0, len(client.AssignedFormIDs)),
	}
	if len(client.AssignedFormIDs) == 0 {
		return result, nil
	}

	submissions, err := store.GetRange(ctx, client.DocumentID, submissionsRange)
	if err != nil {
		return nil, fmt.Errorf("read submissions for %s: %w", clientID, err)
	}

	for _, formID := range client.AssignedFormIDs {
		status := models.StatusNotStarted
		if idx := sheets.FindRow(submissions, []int{0, 1}, []string{clientID, formID}); idx != -1 {
			if s := models.ParseSubmissionRow(submissions[idx]).Status; s != "" {
				status = s
			}
		}
		result.AssignedForms = append(result.AssignedForms, models.FormStatus{FormID: formID, Status: status})
	}

	return result, nil
}
