package types

import (
	"encoding/json"
	"testing"
)

// TestFormResponseDecode verifies the accepted wire shapes for one answer
func TestFormResponseDecode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want FormResponse
	}{
		{"bare string", `"Several days"`, FormResponse{Value: "Several days"}},
		{"bare number", `2`, FormResponse{Value: "2"}},
		{"object with string value", `{"label":"Several days","value":"1"}`, FormResponse{Label: "Several days", Value: "1"}},
		{"object with numeric value", `{"label":"Not at all","value":0}`, FormResponse{Label: "Not at all", Value: "0"}},
		{"object without label", `{"value":3}`, FormResponse{Value: "3"}},
		{"null", `null`, FormResponse{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got FormResponse
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Failed to decode %s: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Decoded %+v, want %+v", got, tc.want)
			}
		})
	}
}

// TestFormResponseDecodeRejectsArrays verifies an unexpected shape errors
func TestFormResponseDecodeRejectsArrays(t *testing.T) {
	var got FormResponse
	if err := json.Unmarshal([]byte(`["a","b"]`), &got); err == nil {
		t.Error("Expected error decoding an array answer")
	}
}

// TestFormResponseCellValue verifies the label wins over the raw value
func TestFormResponseCellValue(t *testing.T) {
	if got := (FormResponse{Label: "Several days", Value: "1"}).CellValue(); got != "Several days" {
		t.Errorf("Expected label, got %q", got)
	}
	if got := (FormResponse{Value: "1"}).CellValue(); got != "1" {
		t.Errorf("Expected value fallback, got %q", got)
	}
}

// TestFormResponseAnswered verifies empty answers read as unanswered
func TestFormResponseAnswered(t *testing.T) {
	if (FormResponse{}).Answered() {
		t.Error("Empty response should not count as answered")
	}
	if !(FormResponse{Value: "0"}).Answered() {
		t.Error("Zero-valued response should count as answered")
	}
}
