package kwpdf

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed report.schema.json
var reportSchemaJSON string

const reportSchemaURL = "report.schema.json"

var compileReportSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(reportSchemaURL, strings.NewReader(reportSchemaJSON)); err != nil {
		return nil, fmt.Errorf("load report schema: %w", err)
	}
	return compiler.Compile(reportSchemaURL)
})

// ReportSchema returns the JSON schema describing the expected report shape.
func ReportSchema() string {
	return reportSchemaJSON
}

// CheckSchema validates raw report JSON against ReportSchema. Decoding is more
// lenient than the schema, so callers usually treat a mismatch as a warning.
func CheckSchema(data []byte) error {
	schema, err := compileReportSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(trimBOM(data), &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	return nil
}
