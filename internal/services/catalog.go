package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/mindfulway/intake-backend/data"
	"github.com/mindfulway/intake-backend/internal/sheets"
)

// Tab names and scan ranges of the tracking tables. Header rows live in
// row 1, so scans start at row 2.
const (
	SubmissionsTab = "Submissions"

	clientsRange     = "Clients!A2:J"
	submissionsRange = "Submissions!A2:D"
	measurementRange = "MeasurementTracking!A2:F"

	clientsAppendRange     = "Clients!A1"
	submissionsAppendRange = "Submissions!A1"
	measurementAppendRange = "MeasurementTracking!A1"
)

// questionsHeaderToken is the literal header some catalog tabs carry in A1
const questionsHeaderToken = "Questions"

// formTabOverrides maps irregular form ids to their catalog tab names.
// Everything else follows the <formId>_Questions convention.
var formTabOverrides = map[string]string{
	"srs2-adult-self":      "srs2-adult-self_Questions",
	"srs2-adult-informant": "srs2-adult-informant_Questions",
}

// QuestionsTabName resolves the central catalog tab holding a form's questions
func QuestionsTabName(formID string) string {
	if tab, ok := formTabOverrides[formID]; ok {
		return tab
	}
	return formID + "_Questions"
}

// FetchQuestions reads a form's question column from the central catalog,
// stripping the header token when present. Question order is catalog row
// order and is never re-sorted.
func FetchQuestions(ctx context.Context, store sheets.Store, centralID, formID string) ([]string, error) {
	tab := QuestionsTabName(formID)
	rows, err := store.GetRange(ctx, centralID, tab+"!A:A")
	if err != nil {
		return nil, fmt.Errorf("fetch questions for %s: %w", formID, err)
	}

	questions := make([]string, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, sheets.Cell(row, 0))
	}
	if len(questions) > 0 && strings.TrimSpace(questions[0]) == questionsHeaderToken {
		questions = questions[1:]
	}
	return questions, nil
}

// FormOption is one selectable answer in a form definition
type FormOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// FormDefinition is an embedded read-only form definition served to the
// paginated renderer: ordered prompts plus the shared answer options.
type FormDefinition struct {
	ID        string       `json:"formId"`
	Name      string       `json:"name"`
	Questions []string     `json:"questions"`
	Options   []FormOption `json:"options"`
}

// LoadFormDefinitions parses every embedded form definition, keyed and
// sorted by form id. File names use underscores; form ids use dashes.
func LoadFormDefinitions() ([]FormDefinition, error) {
	entries, err := data.FormsFS.ReadDir("forms")
	if err != nil {
		return nil, fmt.Errorf("read embedded forms: %w", err)
	}

	defs := make([]FormDefinition, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := data.FormsFS.ReadFile(path.Join("forms", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read embedded form %s: %w", entry.Name(), err)
		}
		var def FormDefinition
		if err := json.Unmarshal(raw, &def); err != nil {
			return nil, fmt.Errorf("parse embedded form %s: %w", entry.Name(), err)
		}
		base := strings.TrimSuffix(entry.Name(), ".json")
		def.ID = strings.ReplaceAll(base, "_", "-")
		if def.Name == "" {
			def.Name = displayName(base)
		}
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs, nil
}

// FindFormDefinition returns the embedded definition for a form id
func FindFormDefinition(formID string) (FormDefinition, error) {
	defs, err := LoadFormDefinitions()
	if err != nil {
		return FormDefinition{}, err
	}
	for _, def := range defs {
		if def.ID == formID {
			return def, nil
		}
	}
	return FormDefinition{}, fmt.Errorf("form %q: %w", formID, ErrNotFound)
}

// displayName turns a file base name into a title: phq9 -> Phq9,
// srs2_adult_self -> Srs2 Adult Self. Definitions should set "name"
// explicitly for clinical titles like "PHQ-9 Depression".
func displayName(base string) string {
	words := strings.Split(base, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
