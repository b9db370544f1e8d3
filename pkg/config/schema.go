package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON string

// SchemaJSON returns the JSON Schema of the options
func SchemaJSON() string {
	return schemaJSON
}

// ValidationError is one schema violation
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of options validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) String() string {
	if r.Valid {
		return "valid"
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Validate checks a nested option map against the schema
func Validate(data map[string]any) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(data)

	res, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, errors.Wrap(err, "schema validation error")
	}

	if !res.Valid() {
		result.Valid = false
		for _, e := range res.Errors() {
			result.Errors = append(result.Errors, ValidationError{
				Field:   e.Field(),
				Message: e.Description(),
			})
		}
	}
	return result, nil
}

// ValidateFile parses a config file on its own, without defaults or the
// environment, and validates it
func ValidateFile(path string) (*ValidationResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "config file not found: %s", path)
	}

	k, err := newEmpty()
	if err != nil {
		return nil, err
	}
	if err := k.LoadFile(path); err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil, err
		}
		return &ValidationResult{
			Valid:  false,
			Errors: []ValidationError{{Field: "syntax", Message: err.Error()}},
		}, nil
	}
	return Validate(k.Raw())
}
