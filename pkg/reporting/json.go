package reporting

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatReport formats a session report as indented JSON bytes
func (f *DefaultJSONFormatter) FormatReport(report *SessionReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// PrintReport prints a session report as JSON to console
func (f *DefaultJSONFormatter) PrintReport(report *SessionReport) {
	data, _ := f.FormatReport(report)
	fmt.Println(string(data))
}

// WriteSummaryJSON writes a session report to a JSON file
func WriteSummaryJSON(report *SessionReport, path string) error {
	formatter := NewDefaultJSONFormatter()

	data, err := formatter.FormatReport(report)
	if err != nil {
		return err
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadSummaryJSON loads a previously written session report
func ReadSummaryJSON(path string) (*SessionReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report SessionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}

	return &report, nil
}
