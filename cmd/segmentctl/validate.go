package main

import (
	"segmentation-service/internal/segmentation"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a strategy request without reading clients",
		Long: `Validate the request in --request and print it normalized, with
minGroupSize and maxCriteriaUsed clamped to their allowed ranges.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := loadRequest(rootOpts.Request)
			if err != nil {
				return err
			}
			req, err := segmentation.ParseRequest(body)
			if err != nil {
				return err
			}
			return writeJSON(cmd, segmentation.Normalize(body, req))
		},
	}
}
