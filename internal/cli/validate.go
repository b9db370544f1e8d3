package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/NikitaCOEUR/stagebench/pkg/config"
)

// ErrValidationFailed is returned when a config file has schema errors
var ErrValidationFailed = errors.New("validation failed")

// Validate checks a config file against the schema and lists every error
func Validate(configPath string, w io.Writer) error {
	if configPath == "" {
		return fmt.Errorf("no config file given")
	}

	_, _ = fmt.Fprintf(w, "Validating: %s\n\n", configPath)

	result, err := config.ValidateFile(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		_, _ = fmt.Fprintln(w, "✅ Configuration is valid!")
		return nil
	}

	_, _ = fmt.Fprintln(w, "❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		_, _ = fmt.Fprintf(w, "%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}
	_, _ = fmt.Fprintf(w, "\nFound %d error(s)\n", len(result.Errors))

	return ErrValidationFailed
}
