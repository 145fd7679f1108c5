package types

import (
	"encoding/json"
	"fmt"
)

// FormResponse is one answer in a submission. The selection-input renderer
// sends {label, value} objects while older form pages send bare strings;
// both decode into the same record. A null or empty entry means unanswered.
type FormResponse struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FormResponse) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = FormResponse{}
		return nil
	}

	// Bare string answer
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FormResponse{Value: s}
		return nil
	}

	// Numeric answer (scale value without a label)
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FormResponse{Value: n.String()}
		return nil
	}

	// {label, value} object; value may be a number or a string
	var obj struct {
		Label string          `json:"label"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("FormResponse: unexpected type, expected string, number or object")
	}
	f.Label = obj.Label
	f.Value = rawToString(obj.Value)
	return nil
}

func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

// Answered reports whether the response carries an answer
func (f FormResponse) Answered() bool {
	return f.Label != "" || f.Value != ""
}

// CellValue is what gets written into the answer column: the label when the
// renderer supplied one, else the raw value.
func (f FormResponse) CellValue() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Value
}
