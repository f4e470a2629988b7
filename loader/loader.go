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

// Package loader reads delimited text, spreadsheet, Parquet and JSON files
// into a datatable.Table.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"weatherdash/datatable"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeXLSX
	FileTypeParquet
	FileTypeJSON
)

// String returns the short name used in status lines and metadata.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "csv"
	case FileTypeXLSX:
		return "xlsx"
	case FileTypeParquet:
		return "parquet"
	case FileTypeJSON:
		return "json"
	default:
		return "unknown"
	}
}

var extensions = map[string]FileType{
	".csv":     FileTypeCSV,
	".txt":     FileTypeCSV,
	".xlsx":    FileTypeXLSX,
	".xlsm":    FileTypeXLSX,
	".parquet": FileTypeParquet,
	".json":    FileTypeJSON,
}

// ErrUnsupportedFormat is wrapped by a LoadError when the file extension is
// not one the loader can read.
var ErrUnsupportedFormat = errors.New("unsupported file type")

// LoadError reports a file that could not be loaded. Err carries the cause.
type LoadError struct {
	Path   string
	Format FileType
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// DetectFileType determines the type of file based on its extension.
func DetectFileType(filePath string) FileType {
	if ft, ok := extensions[strings.ToLower(filepath.Ext(filePath))]; ok {
		return ft
	}
	return FileTypeUnknown
}

// SupportedExtensions lists the extensions Load accepts, e.g. for file
// pickers.
func SupportedExtensions() []string {
	return []string{".csv", ".txt", ".xlsx", ".xlsm", ".parquet", ".json"}
}

// Load parses the whole file at filePath into memory. On failure the
// returned error is a *LoadError and the table is nil.
func Load(filePath string) (*datatable.Table, error) {
	fileType := DetectFileType(filePath)

	var (
		table *datatable.Table
		err   error
	)
	switch fileType {
	case FileTypeCSV:
		table, err = loadCSVFile(filePath)
	case FileTypeXLSX:
		table, err = loadXLSXFile(filePath)
	case FileTypeParquet:
		table, err = loadParquetFile(filePath)
	case FileTypeJSON:
		table, err = loadJSONFile(filePath)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
	if err != nil {
		return nil, &LoadError{Path: filePath, Format: fileType, Err: err}
	}

	log.WithFields(log.Fields{
		"path":    filePath,
		"format":  fileType,
		"rows":    table.RowCount(),
		"columns": table.ColumnCount(),
	}).Debug("loaded data file")

	return table, nil
}

func metadata(filePath string, fileType FileType) datatable.Metadata {
	return datatable.Metadata{
		datatable.MetaSource: filePath,
		datatable.MetaFormat: fileType.String(),
	}
}
