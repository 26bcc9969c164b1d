package options

import (
	"github.com/charmbracelet/huh"

	"datashare/cli/commands/internal"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

// RunSortModel asks for a column and direction to sort by. Event.Value is
// the column name and Event.Data the shared.SortOrder.
func RunSortModel(columns []string, current string, order shared.SortOrder) (internal.Event, error) {
	column := current
	if len(column) == 0 && len(columns) > 0 {
		column = columns[0]
	}

	if len(order) == 0 {
		order = shared.SortAsc
	}

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(utils.GenerateTitle("Sort")),
		huh.NewSelect[string]().
			Title("Column").
			Options(huh.NewOptions(columns...)...).
			Value(&column),
		huh.NewSelect[shared.SortOrder]().
			Title("Order").
			Options(
				huh.NewOption("Ascending", shared.SortAsc),
				huh.NewOption("Descending", shared.SortDesc)).
			Value(&order),
	)).WithTheme(styles.Theme).Run()

	if err != nil || len(column) == 0 {
		return internal.Canceled(internal.SortRequest), err
	}

	return internal.Event{
		Status: internal.StatusOk,
		Type:   internal.SortRequest,
		Value:  column,
		Data:   order,
	}, nil
}

// RunExportModel asks which format to export a table in. Event.Value holds
// the chosen shared.ExportFormat.
func RunExportModel(tableName string) (internal.Event, error) {
	format := shared.ExportCSV
	var confirmed bool

	err := huh.NewForm(huh.NewGroup(
		huh.NewNote().
			Title(utils.GenerateTitle("Export")).
			Description(shared.EscapeString(tableName)),
		huh.NewSelect[shared.ExportFormat]().
			Title("Format").
			Options(
				huh.NewOption("CSV", shared.ExportCSV),
				huh.NewOption("Excel", shared.ExportExcel)).
			Value(&format),
		huh.NewConfirm().
			Affirmative("Export").
			Negative("Cancel").
			Value(&confirmed),
	)).WithTheme(styles.Theme).Run()

	if err != nil || !confirmed {
		return internal.Canceled(internal.ExportRequest), err
	}

	return internal.Event{
		Status: internal.StatusOk,
		Type:   internal.ExportRequest,
		Value:  string(format),
	}, nil
}
