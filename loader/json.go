package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"weatherdash/datatable"
)

// loadJSONFile reads an array of objects, or a single object, as rows.
// Keys become columns in sorted order.
func loadJSONFile(filePath string) (*datatable.Table, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	// Try to parse as array of objects
	var data []map[string]interface{}
	if err := decodeJSON(content, &data); err != nil {
		// Try as single object
		var singleObj map[string]interface{}
		if err := decodeJSON(content, &singleObj); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		data = []map[string]interface{}{singleObj}
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("JSON file has no records: %w", datatable.ErrEmptyData)
	}

	keys := make(map[string]bool)
	for _, obj := range data {
		for k := range obj {
			keys[k] = true
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)
	if len(header) == 0 {
		return nil, fmt.Errorf("JSON records have no fields: %w", datatable.ErrEmptyData)
	}

	records := make([][]string, len(data))
	for i, obj := range data {
		record := make([]string, len(header))
		for col, k := range header {
			record[col] = jsonCell(obj[k])
		}
		records[i] = record
	}

	table, err := datatable.FromRecords(header, records, metadata(filePath, FileTypeJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

// decodeJSON keeps numbers as their source text.
func decodeJSON(content []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	return dec.Decode(v)
}

func jsonCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
