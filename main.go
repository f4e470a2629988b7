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

package main

import (
	"fmt"
	"os"

	"weatherdash/cmd"
)

const (
	cmdName   = "weatherdash"
	shortDesc = "Weather Analysis Dashboard"
	longDesc  = `Weather Analysis Dashboard.

Upload a CSV, Excel, Parquet or JSON file with the columns Date,
Temperature_Max, Temperature_Min, Precipitation and Wind, then view daily
temperature, precipitation or wind trends. Without a subcommand the
dashboard window opens, optionally with FILE loaded.`
)

func main() {
	if err := cmd.NewRootCmd(cmdName, shortDesc, longDesc).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
