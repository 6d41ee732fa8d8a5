package output

import (
	"strings"
	"testing"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
)

func TestToJSON(t *testing.T) {
	table := &models.Table{
		Format:  models.FormatSpreadsheet,
		Headers: []string{"Name", "Age"},
		Rows:    []models.Row{{models.Text("Ann"), models.Number(30)}},
	}

	data, err := ToJSON(table, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	expected := `{"type":"spreadsheet","headers":["Name","Age"],"rows":[["Ann",30]]}`
	if string(data) != expected {
		t.Errorf("ToJSON = %s, expected %s", data, expected)
	}

	pretty, err := ToJSON(table, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"headers\"") {
		t.Errorf("Expected indented output, got %s", pretty)
	}
}

func TestBatchToJSON(t *testing.T) {
	batch := Batch{
		"a.csv": {Table: models.EmptyTable(models.FormatDelimitedText)},
		"b.txt": {Error: "could not parse uploaded file: boom"},
	}

	data, err := BatchToJSON(batch, false)
	if err != nil {
		t.Fatalf("BatchToJSON failed: %v", err)
	}

	expected := `{"a.csv":{"table":{"type":"delimited-text","headers":[],"rows":[]}},"b.txt":{"error":"could not parse uploaded file: boom"}}`
	if string(data) != expected {
		t.Errorf("BatchToJSON = %s, expected %s", data, expected)
	}
}
