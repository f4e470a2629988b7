// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd holds the weatherdash command line.
package cmd

import (
	"fmt"
	"runtime/debug"

	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"weatherdash/loader"
	"weatherdash/weather"
	"weatherdash/windows"
)

// Version is filled in at link time with -ldflags "-X weatherdash/cmd.Version=...".
var Version string

// openDashboard starts the UI and blocks until its window closes.
var openDashboard = func(path string) error {
	d := windows.NewDashboard(app.NewWithID("weatherdash"))
	if path != "" {
		// The dashboard reports the failure itself.
		_ = d.LoadFile(path)
	}
	d.ShowAndRun()
	return nil
}

// GetVersionString reports the linked version, or the module version when
// installed with go install.
func GetVersionString() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}

// NewRootCmd builds the weatherdash command tree.
func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           name + " [file]",
		Short:         shortDesc,
		Long:          longDesc,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return openDashboard(path)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "increase logging verbosity")
	cmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	}

	cmd.AddCommand(NewValidateCmd(), NewRenderCmd(), NewExportCmd())
	return cmd
}

func addChartFlag(cmd *cobra.Command, kind *string) {
	cmd.Flags().StringVarP(kind, "chart", "c", weather.Temperature.String(), "chart to prepare (temperature, precipitation, wind)")
}

// prepareFile loads path and prepares the named chart from it.
func prepareFile(path, chart string) (*weather.PreparedSeries, error) {
	kind, err := weather.ParseChartKind(chart)
	if err != nil {
		return nil, err
	}
	table, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	prepared, err := weather.Prepare(table, kind)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prepared, nil
}
