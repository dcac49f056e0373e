package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jaspreet-dot-casa/ubuntu-ami/pkg/ami"
)

// Columns are the headings shared by the list table and the picker.
var Columns = []string{"Region", "Release", "Version", "Arch", "Type", "Date", "Image ID"}

// recordRow renders the columns of a single record.
func recordRow(rec ami.Record) []string {
	id, err := rec.ImageID()
	if err != nil {
		id = "?"
	}
	return []string{
		rec.Region,
		rec.ReleaseName,
		rec.ReleaseNumber,
		rec.Architecture,
		rec.InstanceType,
		rec.PublishDate,
		id,
	}
}

// RenderTable renders records as a bordered table, in the given order.
// The last row is highlighted as the newest match.
func RenderTable(records []ami.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, recordRow(rec))
	}

	last := len(rows) - 1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case row == last:
				return LatestCellStyle
			default:
				return CellStyle
			}
		}).
		Headers(Columns...).
		Rows(rows...)

	return t.String()
}
