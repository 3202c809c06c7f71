package main

import (
	"encoding/json"
	"fmt"
	"os"

	"segmentation-service/internal/segmentation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Request string
}

// NewRootCommand creates the root command for segmentctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "segmentctl",
		Short: "Compute audience segmentation strategies offline",
		Long: `Compute and validate segmentation strategies against a client pool
stored in a YAML or JSON file, without Redis or PostgreSQL.`,
		SilenceErrors: true, // main prints the error
	}

	cmd.PersistentFlags().StringVarP(&opts.Request, "request", "r", "", "strategy request file (YAML or JSON); empty means auto mode")

	cmd.AddCommand(NewComputeCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// loadRequest reads a strategy request. YAML is converted to the JSON wire
// shape so both formats go through the same decoder.
func loadRequest(path string) (segmentation.RequestBody, error) {
	var body segmentation.RequestBody
	if path == "" {
		return body, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return body, fmt.Errorf("failed to read request: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return body, fmt.Errorf("failed to decode request: %w", err)
	}
	if doc == nil {
		return body, nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return body, fmt.Errorf("failed to decode request: %w", err)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return body, fmt.Errorf("failed to decode request: %w", err)
	}
	return body, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
