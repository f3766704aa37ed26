// Package source reads budget tables from delimited text, Excel workbooks and
// the built-in sample into record sets.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/bburn/internal/model"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Format identifies a file reader.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks a reader from the file name's extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q (want .csv or .xlsx)", ErrUnsupportedFormat, filepath.Base(name))
}

// Open reads the file at path.
func Open(path string) (*model.RecordSet, error) {
	if _, err := DetectFormat(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rs, err := Read(path, f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rs, nil
}

// Read parses r using the reader chosen by name's extension.
func Read(name string, r io.Reader) (*model.RecordSet, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return ReadCSV(r)
	}
}

// FromRows builds a record set from string rows. The first non-blank row is
// the header; blank rows are skipped everywhere.
func FromRows(rows [][]string) *model.RecordSet {
	start := 0
	for start < len(rows) && blankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return &model.RecordSet{}
	}

	rs := model.NewRecordSet(rows[start])
	for _, raw := range rows[start+1:] {
		cells := make([]model.Cell, len(raw))
		for i, v := range raw {
			cells[i] = model.Text(v)
		}
		rs.Append(cells)
	}
	return rs
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
