package export

import (
	"encoding/json"
	"os"

	"github.com/dshills/elecval/pkg/design"
	"github.com/dshills/elecval/pkg/engine"
)

// Report bundles a design with its analysis result, the unit this
// package serializes and renders.
type Report struct {
	Design *design.Design `json:"design"`
	Result *engine.ValidationResult `json:"result"`
}

// ExportJSON serializes a report to JSON with indentation.
func ExportJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ExportJSONCompact serializes a report to JSON without indentation,
// suitable for piping between iterations of a generator loop.
func ExportJSONCompact(r *Report) ([]byte, error) {
	return json.Marshal(r)
}

// SaveJSONToFile exports a report to a JSON file with indentation.
// The file is created with 0644 permissions.
func SaveJSONToFile(r *Report, filepath string) error {
	data, err := ExportJSON(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports a report to a compact JSON file.
// The file is created with 0644 permissions.
func SaveJSONCompactToFile(r *Report, filepath string) error {
	data, err := ExportJSONCompact(r)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
