// Package output serializes normalized tables.
package output

import (
	"encoding/json"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
)

// ToJSON serializes a table to JSON.
func ToJSON(table *models.Table, pretty bool) ([]byte, error) {
	return marshal(table, pretty)
}

// Batch maps input names to their extraction result.
type Batch map[string]Result

// Result is the outcome of extracting one input.
type Result struct {
	Table *models.Table `json:"table,omitempty"`
	Error string        `json:"error,omitempty"`
}

// BatchToJSON serializes the results for several inputs.
func BatchToJSON(batch Batch, pretty bool) ([]byte, error) {
	return marshal(batch, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
