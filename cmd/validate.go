package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"weatherdash/loader"
	"weatherdash/weather"
)

// NewValidateCmd checks that a file can feed every chart.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a weather data file",
		Long:  "Load a weather data file and check the columns and dates every chart needs.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			summary, err := weather.Validate(table)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			log.WithField("path", args[0]).Debug("file is valid")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rows:    %d\n", summary.Rows)
			fmt.Fprintf(out, "columns: %d\n", summary.Columns)
			if summary.Rows > 0 {
				fmt.Fprintf(out, "dates:   %s to %s\n", summary.First.Format(time.DateOnly), summary.Last.Format(time.DateOnly))
			}
			return nil
		},
	}
}
