package datatable

import "errors"

var (
	ErrInvalidColumn  = errors.New("column index out of range")
	ErrInvalidRow     = errors.New("row index out of range")
	ErrEmptyData      = errors.New("file has no data")
	ErrColumnNotFound = errors.New("no such column")
	ErrRaggedColumns  = errors.New("rows and header differ in width")
)
