package data

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	hspinner "github.com/charmbracelet/huh/spinner"

	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

const Help = "Enter -> open table | r -> refresh | b -> back | q -> quit"

type Model struct {
	Next     router.Location
	quitting bool
	table    table.Model
	err      error
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "b", "esc":
			m.quitting = true
			m.Next = router.To(router.Dashboard)
			return m, tea.Quit
		case "r":
			m.quitting = true
			m.Next = router.To(router.Data)
			return m, tea.Quit
		case "enter":
			tables := globals.Data.Tables()
			cursor := m.table.Cursor()
			if cursor >= 0 && cursor < len(tables) {
				m.quitting = true
				m.Next = router.ToTable(tables[cursor].TableName)
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	tablesView := styles.BaseStyle.Render(m.table.View())
	if m.err != nil {
		tablesView += "\n✗ Error: " + m.err.Error()
	} else {
		tablesView += fmt.Sprintf("\n %d tables", globals.Data.TotalTables())
	}

	return styles.BoldStyle.Render("DataShare > Data Tables") + "\n" +
		tablesView + "\n" +
		styles.HelpStyle.Render(Help)
}

func CreateTableRows(tables []shared.Table) []table.Row {
	rows := []table.Row{}
	for _, t := range tables {
		displayName := t.DisplayName
		if len(displayName) == 0 {
			displayName = t.TableName
		}

		description := t.Description
		if len(description) == 0 {
			description = "-"
		}

		rows = append(rows, table.Row{t.TableName, displayName, description})
	}

	return rows
}

func NewModel() Model {
	var fetchErr error
	_ = hspinner.New().Title("Fetching tables...").Action(func() {
		if _, err := globals.Data.FetchTables(); err != nil {
			fetchErr = errors.New(globals.Data.Err())
		}
	}).Run()

	if fetchErr != nil {
		log.Printf("data: %v\n", fetchErr)
	}

	columns := []table.Column{
		{Title: "Table", Width: 12},
		{Title: "Name", Width: 12},
		{Title: "Description", Width: 20},
	}

	return Model{
		table: styles.NewTable(columns, CreateTableRows(globals.Data.Tables()), 10),
		err:   fetchErr,
	}
}

// ShowDataModel lists the tables the user can browse. Picking one moves on
// to that table's view.
func ShowDataModel(_ router.Location) router.Location {
	m := NewModel()
	if !globals.Session.IsAuthenticated() {
		return router.Location{}
	}

	model, err := tea.NewProgram(m).Run()
	utils.HandleCLIError("Error in data view", err)

	return model.(Model).Next
}
