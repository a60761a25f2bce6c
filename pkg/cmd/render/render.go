// Package render encodes analysis documents for the CLI output boundary.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Write encodes v in the requested format (json, yaml) to fileName, or to
// stdout when fileName is empty.
func Write(v any, format, fileName string) error {
	out := io.Writer(os.Stdout)
	if fileName != "" {
		f, err := os.Create(fileName)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch format {
	case "", "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
