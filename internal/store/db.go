// Package store reads budget tables out of existing SQLite databases.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bburn/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNoTable is returned when the requested table does not exist, or when no
// table was named and the database holds more than one.
var ErrNoTable = errors.New("table not found")

// DB is a read-only handle on a SQLite file.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens an existing database read-only.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &DB{db: db, path: path}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Tables lists the tables and views in the database.
func (d *DB) Tables(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, listTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReadTable loads every row of table. An empty name selects the only table
// in the database.
func (d *DB) ReadTable(ctx context.Context, table string) (*model.RecordSet, error) {
	tables, err := d.Tables(ctx)
	if err != nil {
		return nil, err
	}
	table, err = pickTable(tables, table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.path, err)
	}

	rows, err := d.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(table)) //nolint:gosec // table name checked against sqlite_master
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	rs := model.NewRecordSet(cols)
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("reading table %s: %w", table, err)
		}
		cells := make([]model.Cell, len(values))
		for i, v := range values {
			cells[i] = toCell(v)
		}
		rs.Append(cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %w", table, err)
	}
	return rs, nil
}

func pickTable(tables []string, want string) (string, error) {
	if want == "" {
		if len(tables) == 1 {
			return tables[0], nil
		}
		return "", fmt.Errorf("%w: pick one of [%s]", ErrNoTable, strings.Join(tables, ", "))
	}
	for _, t := range tables {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoTable, want)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func toCell(v any) model.Cell {
	switch x := v.(type) {
	case nil:
		return model.Empty
	case int64:
		return model.Number(decimal.NewFromInt(x))
	case float64:
		return model.Number(decimal.NewFromFloat(x))
	case bool:
		if x {
			return model.Number(decimal.NewFromInt(1))
		}
		return model.Number(decimal.Zero)
	case time.Time:
		return model.Date(x)
	case []byte:
		return model.Text(string(x))
	case string:
		return model.Text(x)
	}
	return model.Text(fmt.Sprint(v))
}
