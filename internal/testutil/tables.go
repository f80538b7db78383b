package testutil

import (
	"github.com/leengari/tabsynth/internal/domain/data"
	"github.com/leengari/tabsynth/internal/domain/schema"
	"github.com/leengari/tabsynth/internal/synth"
)

// WorkshopRecords is the row count of the workshop fixture
const WorkshopRecords = 50

// WorkshopColumns is the eight-column workshop inventory: a computer type, three
// peripherals weighted on it, a sound budget, a price tier, a membership level
// and a returned flag
func WorkshopColumns() []synth.ColumnSpec {
	yesNo := synth.Values("Yes", "No")
	return []synth.ColumnSpec{
		synth.Column("computer", synth.Values("PC", "Laptop")),
		synth.DependentColumn("display", yesNo, 0, 90, 10),
		synth.DependentColumn("keyboard", yesNo, 0, 85, 15),
		synth.DependentColumn("mouse", yesNo, 0, 70, 30),
		{Name: "sound", Domain: synth.IntBound(40), DependencyIndex: 0},
		synth.Column("budget", synth.Values("$700", "$1400", "$2100")),
		synth.Column("membership", synth.Values("No", "Bronze", "Silver", "Gold")),
		synth.Column("returned", yesNo),
	}
}

// WorkshopParams is the workshop fixture in the loose six-element form
func WorkshopParams(name string) []interface{} {
	return []interface{}{
		name,
		WorkshopRecords,
		[]string{"computer", "display", "keyboard", "mouse", "sound", "budget", "membership", "returned"},
		[]interface{}{
			[]string{"PC", "Laptop"},
			[]string{"Yes", "No"},
			[]string{"Yes", "No"},
			[]string{"Yes", "No"},
			40,
			[]string{"$700", "$1400", "$2100"},
			[]string{"No", "Bronze", "Silver", "Gold"},
			[]string{"Yes", "No"},
		},
		[]int{-1, 0, 0, 0, 0, -1, -1, -1},
		[]interface{}{nil, []int{90, 10}, []int{85, 15}, []int{70, 30}, nil, nil, nil, nil},
	}
}

// NewTable builds a table from column names and positional row values
func NewTable(name string, columns []string, rows ...[]interface{}) *schema.Table {
	table := schema.NewTable(name, columns)
	for _, values := range rows {
		row := data.NewRow(make(map[string]interface{}, len(columns)))
		for i, col := range columns {
			if i < len(values) {
				row.Set(col, values[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
