package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"weatherdash/render"
)

// NewRenderCmd draws a chart to a PNG file.
func NewRenderCmd() *cobra.Command {
	var (
		chart  string
		output string
		opts   render.Options
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a chart as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prepared, err := prepareFile(args[0], chart)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := render.PNG(f, prepared, opts); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}

			log.WithFields(log.Fields{"chart": chart, "out": output}).Info("chart rendered")
			return nil
		},
	}

	addChartFlag(cmd, &chart)
	cmd.Flags().StringVarP(&output, "out", "o", "", "PNG file to write")
	cmd.Flags().IntVar(&opts.Width, "width", render.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", render.DefaultHeight, "image height in pixels")
	if err := cmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}
	return cmd
}
