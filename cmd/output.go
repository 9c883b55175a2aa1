package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"dmpublish/pkg/config"

	"gopkg.in/yaml.v3"
)

func resolveOutputFormat(cfg *config.Config) string {
	if outputFormat != "" {
		return outputFormat
	}
	return cfg.Output.Format
}

func printObject(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}
