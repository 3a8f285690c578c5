package taskstore

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/daycal/internal/datenav"
)

const schemaURL = "tasks.schema.json"

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "daycal task file",
  "type": "object",
  "propertyNames": {
    "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"
  },
  "additionalProperties": {
    "type": "array",
    "minItems": 1,
    "items": {
      "type": "object",
      "required": ["task", "status"],
      "properties": {
        "task": {"type": "string", "minLength": 1},
        "status": {"enum": ["pending", "completed"]}
      },
      "additionalProperties": false
    }
  }
}`

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return schema, nil
}

// decodeDocument validates a generic decoded value and converts it to a
// Document.
func decodeDocument(schema *jsonschema.Schema, v interface{}) (Document, error) {
	if err := schema.Validate(v); err != nil {
		return nil, schemaErrors(err)
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("re-encode task file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("decode task file: %w", err)
	}

	// The schema checks the key shape; the calendar check needs Go.
	var errs ValidationErrors
	for _, date := range doc.Dates() {
		if _, err := datenav.ParseISO(date); err != nil {
			errs = append(errs, &ValidationError{Path: date, Err: fmt.Errorf("not a calendar date")})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

func schemaErrors(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var errs ValidationErrors
	collectSchemaErrors(&errs, ve)
	if len(errs) == 0 {
		return &ValidationError{Err: fmt.Errorf("%s", ve.Message)}
	}
	return errs
}

func collectSchemaErrors(errs *ValidationErrors, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// jsonPointerToPath converts "/2024-03-15/0/status" to
// "2024-03-15[0].status".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
