package persistence

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var tasksSchemaJSON []byte

const tasksSchemaURL = "tasks.schema.json"

var (
	tasksSchemaOnce sync.Once
	tasksSchema     *jsonschema.Schema
	tasksSchemaErr  error
)

// RecordError describes why a stored tasks record was rejected.
type RecordError struct {
	Path    string
	Message string
}

func (e *RecordError) Error() string {
	if e.Path == "" {
		return "persistence: invalid tasks record: " + e.Message
	}
	return fmt.Sprintf("persistence: invalid tasks record at %s: %s", e.Path, e.Message)
}

func compiledTasksSchema() (*jsonschema.Schema, error) {
	tasksSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(tasksSchemaURL, bytes.NewReader(tasksSchemaJSON)); err != nil {
			tasksSchemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		tasksSchema, tasksSchemaErr = compiler.Compile(tasksSchemaURL)
		if tasksSchemaErr != nil {
			tasksSchemaErr = fmt.Errorf("compile schema: %w", tasksSchemaErr)
		}
	})
	return tasksSchema, tasksSchemaErr
}

// validateTasksRecord checks raw against the tasks record schema.
func validateTasksRecord(raw []byte) error {
	schema, err := compiledTasksSchema()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &RecordError{Message: err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return recordErrorFrom(err)
	}
	return nil
}

// recordErrorFrom reduces a schema failure to its first leaf cause.
func recordErrorFrom(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &RecordError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &RecordError{Path: ve.InstanceLocation, Message: ve.Message}
}
