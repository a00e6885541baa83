package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/phrazzld/task-extract-api/internal/domain"
)

const schemaURL = "tasks.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// TasksSchema returns the JSON Schema of the {"tasks": [...]} envelope.
func TasksSchema() map[string]any {
	details := make(map[string]any, len(domain.FieldKeys))
	for _, key := range domain.FieldKeys {
		details[key] = map[string]any{"type": "string"}
	}

	task := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"task_number", "task_title", "details"},
		"properties": map[string]any{
			"task_number": map[string]any{"type": "string", "pattern": `^\d{1,2}\.\d{1,2}$`},
			"task_title":  map[string]any{"type": "string"},
			"details": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             domain.FieldKeys,
				"properties":           details,
			},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"tasks"},
		"properties": map[string]any{
			"tasks": map[string]any{"type": "array", "items": task},
		},
	}
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(TasksSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateJSON checks raw envelope bytes against TasksSchema.
func ValidateJSON(data []byte) error {
	s, err := schema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("envelope does not match schema: %w", err)
	}
	return nil
}

// Validate serializes result and checks it against TasksSchema. Failures
// wrap domain.ErrProcessing.
func Validate(result *domain.ExtractionResult) error {
	if result == nil {
		return fmt.Errorf("%w: nil extraction result", domain.ErrProcessing)
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%w: marshal result: %w", domain.ErrProcessing, err)
	}
	if err := ValidateJSON(data); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrProcessing, err)
	}
	return nil
}
