// Package model defines the record set and analysis result types for bburn.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind identifies which field of a Cell holds its value.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindString
	KindNumber
	KindDate
)

// Cell is one value of a record. Sources keep whatever type they read;
// coercion to numbers and dates happens when a component asks for it.
type Cell struct {
	Kind CellKind
	Text string
	Num  decimal.Decimal
	Time time.Time
}

// Empty is the missing value.
var Empty = Cell{}

// Text returns a string cell, or Empty when s is blank.
func Text(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty
	}
	return Cell{Kind: KindString, Text: s}
}

// Number returns a numeric cell.
func Number(d decimal.Decimal) Cell {
	return Cell{Kind: KindNumber, Num: d}
}

// Date returns a date cell.
func Date(t time.Time) Cell {
	return Cell{Kind: KindDate, Time: t}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// Decimal coerces the cell to a number.
func (c Cell) Decimal() (decimal.Decimal, bool) {
	switch c.Kind {
	case KindNumber:
		return c.Num, true
	case KindString:
		return ParseAmount(c.Text)
	}
	return decimal.Zero, false
}

// Date coerces the cell to a date.
func (c Cell) Date() (time.Time, bool) {
	switch c.Kind {
	case KindDate:
		return c.Time, true
	case KindString:
		return ParseDate(c.Text)
	}
	return time.Time{}, false
}

func (c Cell) String() string {
	switch c.Kind {
	case KindString:
		return c.Text
	case KindNumber:
		return c.Num.String()
	case KindDate:
		if c.Time.Hour() == 0 && c.Time.Minute() == 0 && c.Time.Second() == 0 {
			return c.Time.Format("2006-01-02")
		}
		return c.Time.Format("2006-01-02 15:04:05")
	}
	return ""
}

// Row maps a column name to its cell. Missing columns read as Empty.
type Row map[string]Cell

// RecordSet is one table of budget rows.
type RecordSet struct {
	Columns []string
	Rows    []Row
}

// NewRecordSet returns an empty record set with the given header.
// Blank and duplicate names are renamed so every column is addressable.
func NewRecordSet(header []string) *RecordSet {
	return &RecordSet{Columns: uniqueColumns(header)}
}

// Append adds a row from positional cells. Extra cells beyond the header are
// ignored; short rows are padded with Empty. Rows that are entirely empty are
// skipped and Append returns false.
func (rs *RecordSet) Append(cells []Cell) bool {
	row := make(Row, len(rs.Columns))
	blank := true
	for i, col := range rs.Columns {
		c := Empty
		if i < len(cells) {
			c = cells[i]
		}
		if !c.IsEmpty() {
			blank = false
		}
		row[col] = c
	}
	if blank {
		return false
	}
	rs.Rows = append(rs.Rows, row)
	return true
}

// Len returns the number of rows. A nil record set has none.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// HasColumn reports whether name is one of the record set's columns.
func (rs *RecordSet) HasColumn(name string) bool {
	if rs == nil {
		return false
	}
	for _, c := range rs.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func uniqueColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := seen[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
