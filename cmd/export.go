package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"weatherdash/export"
)

// NewExportCmd writes the prepared chart data to a file.
func NewExportCmd() *cobra.Command {
	var (
		chart  string
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export prepared chart data",
		Long:  "Export the date-sorted series of a chart as csv, json or parquet.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				f   export.Format
				err error
			)
			if format != "" {
				f, err = export.ParseFormat(format)
			} else {
				f, err = export.FormatFromPath(output)
			}
			if err != nil {
				return err
			}

			prepared, err := prepareFile(args[0], chart)
			if err != nil {
				return err
			}
			if err := export.Write(output, f, prepared); err != nil {
				return err
			}

			log.WithFields(log.Fields{"chart": chart, "format": f, "out": output}).Info("chart data exported")
			return nil
		},
	}

	addChartFlag(cmd, &chart)
	cmd.Flags().StringVarP(&output, "out", "o", "", "file to write")
	cmd.Flags().StringVarP(&format, "format", "f", "", "csv, json or parquet (default: from the --out extension)")
	if err := cmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}
	return cmd
}
