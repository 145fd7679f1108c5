package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mindfulway/intake-backend/internal/models"
	"github.com/mindfulway/intake-backend/internal/services"
)

// TestFindClient verifies registry lookup by client id
func TestFindClient(t *testing.T) {
	store, client, _ := provisionJane(t)
	ctx := context.Background()

	rec, err := services.FindClient(ctx, store, centralID, client.ClientID)
	if err != nil {
		t.Fatalf("Failed to find client: %v", err)
	}
	if rec.DisplayName != "Jane Doe" || rec.DocumentID != client.SheetID {
		t.Errorf("Unexpected record %+v", rec)
	}

	_, err = services.FindClient(ctx, store, centralID, "nobody_1")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestClientForms verifies the dashboard payload defaults missing statuses
// to Not Started and reflects completed submissions
func TestClientForms(t *testing.T) {
	store, cfg, log := setupStore(t)
	ctx := context.Background()

	client, err := services.CreateClient(ctx, store, cfg, log, services.CreateClientInput{
		DisplayName:   "Jane Doe",
		UserType:      "self",
		SelectedForms: []string{"gad7", "phq9"},
	})
	if err != nil {
		t.Fatalf("Failed to provision client: %v", err)
	}

	result, err := services.ClientForms(ctx, store, centralID, client.ClientID)
	if err != nil {
		t.Fatalf("Failed to list client forms: %v", err)
	}
	if result.ClientName != "Jane Doe" {
		t.Errorf("Unexpected client name %q", result.ClientName)
	}
	if len(result.AssignedForms) != 2 {
		t.Fatalf("Expected 2 assigned forms, got %d", len(result.AssignedForms))
	}
	for _, fs := range result.AssignedForms {
		if fs.Status != models.StatusNotStarted {
			t.Errorf("Expected Not Started for %s, got %q", fs.FormID, fs.Status)
		}
	}

	// Complete one form; only that status flips
	if _, err := services.SyncSubmission(ctx, store, cfg, log, services.SubmitFormInput{
		ClientID:  client.ClientID,
		FormID:    "gad7",
		Responses: gad7Responses(),
	}); err != nil {
		t.Fatalf("Failed to submit gad7: %v", err)
	}

	result, err = services.ClientForms(ctx, store, centralID, client.ClientID)
	if err != nil {
		t.Fatalf("Failed to list client forms: %v", err)
	}
	byForm := make(map[string]string, len(result.AssignedForms))
	for _, fs := range result.AssignedForms {
		byForm[fs.FormID] = fs.Status
	}
	if byForm["gad7"] != models.StatusCompleted {
		t.Errorf("Expected gad7 Completed, got %q", byForm["gad7"])
	}
	if byForm["phq9"] != models.StatusNotStarted {
		t.Errorf("Expected phq9 Not Started, got %q", byForm["phq9"])
	}
}
