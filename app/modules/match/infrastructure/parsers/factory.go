package parsers

import (
	"path/filepath"
	"strings"
)

// ForFile picks the parser for a file by extension.
func ForFile(fileName string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}
