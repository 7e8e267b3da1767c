package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clocksynk/dashboard/pkg/adapters"
	"github.com/clocksynk/dashboard/pkg/models/api"
	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	weeklySchema  = mustSchema("schemas/weekly.json")
	monthlySchema = mustSchema("schemas/monthly.json")
)

func mustSchema(path string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", path, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", path, err))
	}
	return schema
}

// DecodeWeekly validates an externally supplied weekly document and maps it
// to the domain shape.
func DecodeWeekly(raw []byte) (*domain.WeeklyReport, error) {
	if err := validate(weeklySchema, raw); err != nil {
		return nil, err
	}
	var doc api.WeeklyReport
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &RenderError{Stage: "decode", Err: err}
	}
	report := adapters.MapWeeklyReportApiToDomain(doc)
	return &report, nil
}

func DecodeMonthly(raw []byte) (*domain.MonthlyReport, error) {
	if err := validate(monthlySchema, raw); err != nil {
		return nil, err
	}
	var doc api.MonthlyReport
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &RenderError{Stage: "decode", Err: err}
	}
	report := adapters.MapMonthlyReportApiToDomain(doc)
	return &report, nil
}

func validate(schema *gojsonschema.Schema, raw []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &RenderError{Stage: "validate", Err: fmt.Errorf("failed to validate: %w", err)}
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return &RenderError{Stage: "validate", Err: fmt.Errorf("validation failed: %s", strings.Join(problems, "; "))}
	}
	return nil
}
