package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/stagebench/pkg/config"
)

// Schema prints the JSON Schema of the config file, or writes it to outputPath
func Schema(outputPath string, w io.Writer) error {
	schemaJSON := config.SchemaJSON()

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(schemaJSON), 0o644); err != nil { //nolint:gosec // schema is public
			return fmt.Errorf("failed to write schema to %s: %w", outputPath, err)
		}
		_, _ = fmt.Fprintf(w, "JSON Schema written to: %s\n", outputPath)
		return nil
	}

	_, err := fmt.Fprintln(w, schemaJSON)
	return err
}
