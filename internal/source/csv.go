package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/theirongolddev/bburn/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Candidate delimiters, most specific first so ties favour ';' over ','.
var delimiters = []rune{';', '\t', ',', '|'}

// ReadCSV parses delimited text. The delimiter is taken from the header line.
func ReadCSV(r io.Reader) (*model.RecordSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(firstLine(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	return FromRows(rows), nil
}

// DetectDelimiter returns the candidate delimiter that occurs most often in
// line, or ',' when none occurs.
func DetectDelimiter(line string) rune {
	best, bestCount := ',', 0
	for _, d := range delimiters {
		if n := countOutsideQuotes(line, d); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func countOutsideQuotes(line string, d rune) int {
	n, quoted := 0, false
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == d && !quoted:
			n++
		}
	}
	return n
}

func firstLine(data []byte) string {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}
