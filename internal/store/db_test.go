package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
	return path
}

func TestReadTable(t *testing.T) {
	path := seedDB(t,
		`CREATE TABLE ledger ("Date" TEXT, "Income Amount" INTEGER, "Expense Amount" REAL, "Expense Category" TEXT)`,
		`INSERT INTO ledger VALUES ('2024-01-31', 3000, 2000.25, 'Groceries')`,
		`INSERT INTO ledger VALUES ('2024-02-29', 3200, NULL, 'Utilities')`,
		`INSERT INTO ledger VALUES (NULL, NULL, NULL, NULL)`,
	)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	rs, err := db.ReadTable(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Income Amount", "Expense Amount", "Expense Category"}, rs.Columns)
	require.Equal(t, 2, rs.Len(), "all-null rows are dropped")

	amt, ok := rs.Rows[0]["Expense Amount"].Decimal()
	require.True(t, ok)
	assert.Equal(t, "2000.25", amt.String())
	assert.True(t, rs.Rows[1]["Expense Amount"].IsEmpty())

	d, ok := rs.Rows[1]["Date"].Date()
	require.True(t, ok)
	assert.Equal(t, 2, int(d.Month()))
}

func TestReadTable_Selection(t *testing.T) {
	path := seedDB(t,
		`CREATE TABLE a (x INTEGER)`,
		`CREATE TABLE "odd ""name""" (y TEXT)`,
		`INSERT INTO "odd ""name""" VALUES ('hi')`,
	)

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	tables, err := db.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", `odd "name"`}, tables)

	_, err = db.ReadTable(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoTable)

	_, err = db.ReadTable(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoTable)

	rs, err := db.ReadTable(context.Background(), `odd "name"`)
	require.NoError(t, err)
	assert.Equal(t, "hi", rs.Rows[0]["y"].String())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
}
