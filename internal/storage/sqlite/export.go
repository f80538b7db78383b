// Package sqlite exports tables into a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/leengari/tabsynth/internal/domain/data"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// Export writes each table under its map key, replacing any table of the same
// name, inside one transaction. Nil tables are skipped.
func Export(ctx context.Context, dbPath string, tables map[string]*schema.Table) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", dbPath, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	names := make([]string, 0, len(tables))
	for name, t := range tables {
		if t != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		if err := exportTable(ctx, tx, name, tables[name]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to export table %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit export: %w", err)
	}
	return nil
}

func exportTable(ctx context.Context, tx *sql.Tx, name string, t *schema.Table) error {
	t.RLock()
	defer t.RUnlock()

	if len(t.Columns) == 0 {
		return fmt.Errorf("table has no columns")
	}

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return err
	}

	defs := make([]string, len(t.Columns))
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cols[i] = quoteIdent(col)
		defs[i] = cols[i] + " " + Affinity(t.Rows, col)
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			args[j] = sqlValue(row.Data[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// Affinity picks the SQLite column type from the first non-missing value
func Affinity(rows []data.Row, column string) string {
	for _, row := range rows {
		v := row.Data[column]
		if data.IsMissing(v) {
			continue
		}
		switch v.(type) {
		case int, int32, int64, bool:
			return "INTEGER"
		case float32, float64:
			return "REAL"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

func sqlValue(v interface{}) any {
	if data.IsMissing(v) {
		return nil
	}
	switch v.(type) {
	case string, int, int32, int64, float32, float64, bool, []byte:
		return v
	}
	return fmt.Sprint(v)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
