// Package render prints tables for humans.
package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leengari/tabsynth/internal/domain/schema"
	"github.com/leengari/tabsynth/internal/storage/writer"
)

// Table writes at most limit rows of t as a boxed table (limit <= 0 prints all)
// with a footer giving the total row count
func Table(w io.Writer, t *schema.Table, limit int) error {
	if t == nil {
		_, err := fmt.Fprintln(w, "(no table)")
		return err
	}

	t.RLock()
	defer t.RUnlock()

	if len(t.Columns) == 0 {
		_, err := fmt.Fprintf(w, "%s: (0 columns, %d rows)\n", t.Name, len(t.Rows))
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle(t.Name)

	header := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	shown := len(t.Rows)
	if limit > 0 && limit < shown {
		shown = limit
	}
	for _, row := range t.Rows[:shown] {
		r := make(table.Row, len(t.Columns))
		for i, col := range t.Columns {
			r[i] = writer.FormatValue(row.Data[col])
		}
		tw.AppendRow(r)
	}

	footer := fmt.Sprintf("%d rows", len(t.Rows))
	if shown < len(t.Rows) {
		footer = fmt.Sprintf("%d of %d rows", shown, len(t.Rows))
	}
	tw.AppendFooter(table.Row{footer})

	tw.Render()
	return nil
}
