package triage

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Answers are a flat object of non-empty symptom names to scalar values.
const responsesSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"minProperties": 1,
	"propertyNames": {"minLength": 1},
	"additionalProperties": {"type": ["string", "number", "boolean"]}
}`

var responsesSchema = mustSchema(responsesSchemaJSON)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile responses schema: %v", err))
	}
	return s
}

// ValidateResponses checks a questionnaire payload before it is stored.
func ValidateResponses(raw []byte) error {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return fmt.Errorf("responses is required")
	}
	result, err := responsesSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("responses must be valid JSON")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid responses: %s", strings.Join(msgs, "; "))
}
