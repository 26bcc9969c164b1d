package table

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	hspinner "github.com/charmbracelet/huh/spinner"

	"datashare/cli/commands/input"
	"datashare/cli/commands/internal"
	"datashare/cli/commands/table/options"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

// ColumnNames returns the columns to display, in the order the table's
// metadata lists them. Without metadata the keys of the first row are used.
func ColumnNames(meta shared.Table, rows []shared.Row) []string {
	names := make([]string, 0, len(meta.Columns))
	for _, column := range meta.Columns {
		names = append(names, column.Name)
	}

	if len(names) > 0 || len(rows) == 0 {
		return names
	}

	for key := range rows[0] {
		names = append(names, key)
	}

	sort.Strings(names)
	return names
}

func CreateDataRows(columns []string, rows []shared.Row) []table.Row {
	result := []table.Row{}
	for _, row := range rows {
		cells := make(table.Row, len(columns))
		for i, column := range columns {
			cells[i] = shared.FormatValue(row[column])
		}

		result = append(result, cells)
	}

	return result
}

func NewDataTable(meta shared.Table, rows []shared.Row) table.Model {
	names := ColumnNames(meta, rows)
	columns := make([]table.Column, len(names))
	for i, name := range names {
		columns[i] = table.Column{Title: name, Width: max(len(name), 4)}
	}

	return styles.NewTable(columns, CreateDataRows(names, rows), 12)
}

// DescribePage summarizes the current page for the status line.
func DescribePage(pagination shared.Pagination, query shared.TableQuery) string {
	pages := max(pagination.Pages, 1)
	desc := fmt.Sprintf("Page %d of %d | %d rows", max(pagination.Page, 1), pages, pagination.Total)

	if len(query.Search) > 0 {
		desc += fmt.Sprintf(" matching '%s' (of %d)", query.Search, pagination.RealTotal)
	}

	if len(query.SortBy) > 0 {
		order := query.SortOrder
		if len(order) == 0 {
			order = shared.SortAsc
		}
		desc += fmt.Sprintf(" | sorted by %s %s", query.SortBy, order)
	}

	return desc
}

func NewModel(name string) Model {
	query := shared.TableQuery{Page: 1, PerPage: globals.Config.PerPage}

	var meta shared.Table
	var fetchErr error
	_ = hspinner.New().Title("Fetching table...").Action(func() {
		var err error
		meta, err = globals.Data.FetchTableMetadata(name)
		if err != nil {
			fetchErr = errors.New(globals.Data.Err())
			return
		}

		if _, err = globals.Data.FetchTableData(name, query); err != nil {
			fetchErr = errors.New(globals.Data.Err())
		}
	}).Run()

	if fetchErr != nil {
		log.Printf("table %s: %v\n", name, fetchErr)
	}

	var rows []shared.Row
	if fetchErr == nil {
		rows = globals.Data.TableData()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		name:    name,
		meta:    meta,
		query:   query,
		init:    true,
		table:   NewDataTable(meta, rows),
		spinner: s,
		status:  Status{Err: fetchErr},
	}
}

func (m Model) handleEvent(event internal.Event) Model {
	m.pending = nil
	if event.Status != internal.StatusOk {
		return m
	}

	switch event.Type {
	case internal.SearchRequest:
		m.query.Search = event.Value
		m.query.Page = 1
	case internal.SortRequest:
		order, _ := event.Data.(shared.SortOrder)
		m.query.SortBy = event.Value
		m.query.SortOrder = order
		m.query.Page = 1
	case internal.ExportRequest:
		m.status = Status{
			Processing: true,
			Message:    fmt.Sprintf("Exporting %s as %s...", m.name, event.Value),
		}
		m.pending = export(m.name, shared.ExportFormat(event.Value))
		return m
	default:
		return m
	}

	m.status = Status{Processing: true, Message: "Loading rows..."}
	m.pending = fetchPage(m.name, m.query)
	return m
}

func RunTableModel(m Model, event internal.Event) (Model, error) {
	m.ViewRequest = internal.ViewRequest{}
	m = m.handleEvent(event)

	model, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}

	return model.(Model), nil
}

func (m Model) runSubview() (internal.Event, error) {
	req := m.ViewRequest
	switch req.View {
	case internal.InputView:
		return input.RunModel(
			req.Type,
			"Search",
			"Filter rows by any column. Leave blank to show everything.",
			req.Value,
			false)
	case internal.SortView:
		return options.RunSortModel(
			ColumnNames(m.meta, globals.Data.TableData()),
			m.query.SortBy,
			m.query.SortOrder)
	case internal.ExportView:
		return options.RunExportModel(req.Name)
	}

	return internal.Event{}, nil
}

// ShowTableModel pages through the rows of the table named by loc.
func ShowTableModel(loc router.Location) router.Location {
	name := loc.Param(router.TableNameParam)
	if len(name) == 0 {
		return router.To(router.Data)
	}

	m := NewModel(name)
	if !globals.Session.IsAuthenticated() {
		return router.Location{}
	}

	m, err := RunTableModel(m, internal.Event{})
	for err == nil && m.ViewRequest.View > internal.NullView {
		event, subviewErr := m.runSubview()
		if errors.Is(subviewErr, huh.ErrUserAborted) {
			event = internal.Canceled(m.ViewRequest.Type)
		} else if subviewErr != nil {
			m.status = Status{Err: subviewErr}
			event = internal.Event{}
		}

		m, err = RunTableModel(m, event)
	}

	utils.HandleCLIError("Error in table view", err)
	return m.Next
}
