package main

import (
	"fmt"
	"time"

	"segmentation-service/internal/platform/file"
	"segmentation-service/internal/segmentation"

	"github.com/spf13/cobra"
)

type computeOutput struct {
	Message     string                      `json:"message"`
	Strategy    segmentation.StrategyResult `json:"strategy"`
	Fingerprint string                      `json:"poolFingerprint,omitempty"`
}

// NewComputeCommand creates the compute command.
func NewComputeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		clients     string
		now         string
		fingerprint bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a strategy over a client file",
		Long: `Compute a segmentation strategy over the clients in --clients.

Without --request (or with an empty filter list) the strategy is
auto-maximized over every observed attribute value.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			clock := time.Now
			if now != "" {
				t, err := time.Parse("2006-01-02", now)
				if err != nil {
					return fmt.Errorf("invalid --now %q: want YYYY-MM-DD", now)
				}
				clock = func() time.Time { return t }
			}

			body, err := loadRequest(rootOpts.Request)
			if err != nil {
				return err
			}

			svc := segmentation.NewService(file.NewClientSource(clients), nil, nil, nil, segmentation.WithClock(clock))
			out, err := svc.Compute(cmd.Context(), body)
			if err != nil {
				return err
			}

			res := computeOutput{Message: out.Message, Strategy: out.Result}
			if fingerprint {
				res.Fingerprint = out.Fingerprint
			}
			return writeJSON(cmd, res)
		},
	}

	cmd.Flags().StringVarP(&clients, "clients", "c", "", "client pool file (YAML or JSON)")
	cmd.Flags().StringVar(&now, "now", "", "evaluate currentMonth filters as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "include the client pool fingerprint")
	_ = cmd.MarkFlagRequired("clients")

	return cmd
}
