package services_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mindfulway/intake-backend/internal/services"
)

// TestQuestionsTabName verifies the naming convention and its overrides
func TestQuestionsTabName(t *testing.T) {
	cases := map[string]string{
		"gad7":                 "gad7_Questions",
		"phq9":                 "phq9_Questions",
		"srs2-adult-self":      "srs2-adult-self_Questions",
		"srs2-adult-informant": "srs2-adult-informant_Questions",
	}
	for formID, want := range cases {
		if got := services.QuestionsTabName(formID); got != want {
			t.Errorf("QuestionsTabName(%q) = %q, want %q", formID, got, want)
		}
	}
}

// TestFetchQuestions verifies header stripping and row order
func TestFetchQuestions(t *testing.T) {
	store, cfg, _ := setupStore(t)
	ctx := context.Background()

	questions, err := services.FetchQuestions(ctx, store, cfg.CentralSpreadsheetID, "gad7")
	if err != nil {
		t.Fatalf("Failed to fetch questions: %v", err)
	}
	want := []string{
		"Feeling nervous, anxious, or on edge",
		"Not being able to stop or control worrying",
		"Worrying too much about different things",
	}
	if !reflect.DeepEqual(questions, want) {
		t.Errorf("Expected header-stripped questions %v, got %v", want, questions)
	}

	// No header token on this tab, everything is a question
	questions, err = services.FetchQuestions(ctx, store, cfg.CentralSpreadsheetID, "phq9")
	if err != nil {
		t.Fatalf("Failed to fetch questions: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("Expected 2 questions without header stripping, got %d", len(questions))
	}
}

// TestFetchQuestionsMissingTab verifies a missing catalog tab surfaces an error
func TestFetchQuestionsMissingTab(t *testing.T) {
	store, cfg, _ := setupStore(t)

	_, err := services.FetchQuestions(context.Background(), store, cfg.CentralSpreadsheetID, "nope")
	if err == nil {
		t.Error("Expected error for missing catalog tab")
	}
}

// TestLoadFormDefinitions verifies the embedded definitions parse and sort
func TestLoadFormDefinitions(t *testing.T) {
	defs, err := services.LoadFormDefinitions()
	if err != nil {
		t.Fatalf("Failed to load form definitions: %v", err)
	}
	if len(defs) < 2 {
		t.Fatalf("Expected at least 2 embedded forms, got %d", len(defs))
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].ID >= defs[i].ID {
			t.Errorf("Definitions not sorted: %q before %q", defs[i-1].ID, defs[i].ID)
		}
	}

	gad7, err := services.FindFormDefinition("gad7")
	if err != nil {
		t.Fatalf("Failed to find gad7: %v", err)
	}
	if gad7.Name != "GAD-7 Anxiety" {
		t.Errorf("Unexpected gad7 name %q", gad7.Name)
	}
	if len(gad7.Questions) != 7 {
		t.Errorf("Expected 7 gad7 questions, got %d", len(gad7.Questions))
	}
	if len(gad7.Options) != 4 || gad7.Options[3].Value != 3 {
		t.Errorf("Unexpected gad7 options %v", gad7.Options)
	}

	phq9, err := services.FindFormDefinition("phq9")
	if err != nil {
		t.Fatalf("Failed to find phq9: %v", err)
	}
	if len(phq9.Questions) != 9 {
		t.Errorf("Expected 9 phq9 questions, got %d", len(phq9.Questions))
	}
}

// TestFindFormDefinitionNotFound verifies unknown ids map to ErrNotFound
func TestFindFormDefinitionNotFound(t *testing.T) {
	_, err := services.FindFormDefinition("nope")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
