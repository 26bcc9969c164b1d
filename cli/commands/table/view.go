package table

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"datashare/cli/commands/internal"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/shared"
)

type Model struct {
	ViewRequest internal.ViewRequest
	Next        router.Location

	name     string
	meta     shared.Table
	query    shared.TableQuery
	init     bool
	quitting bool
	pending  tea.Cmd
	table    table.Model
	spinner  spinner.Model
	status   Status
}

type Status struct {
	Processing bool
	Message    string
	Success    string
	Err        error
}

type pageMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}

const Help = `
n/→ -> next page | p/← -> prev page | / -> search | o -> sort | c -> clear |
e ---> export    | b -> back to tables | q -> quit`

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pending)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.status.Processing {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case pageMsg:
		m.status = Status{Err: msg.err}
		if !globals.Session.IsAuthenticated() {
			m.quitting = true
			return m, tea.Quit
		}

		m.table = NewDataTable(m.meta, globals.Data.TableData())
		return m, nil
	case exportDoneMsg:
		m.status = Status{Err: msg.err}
		if msg.err == nil {
			m.status.Success = fmt.Sprintf("Exported to %s", msg.path)
		}

		if !globals.Session.IsAuthenticated() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyMsg:
		if m.status.Processing {
			if msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}

		m.status.Err = nil
		m.status.Success = ""
		pagination := globals.Data.Pagination()
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "b", "esc", "backspace":
			m.quitting = true
			m.Next = router.To(router.Data)
			return m, tea.Quit
		case "n", "right":
			if m.query.Page < pagination.Pages {
				m.query.Page++
				return m.load()
			}
			return m, nil
		case "p", "left":
			if m.query.Page > 1 {
				m.query.Page--
				return m.load()
			}
			return m, nil
		case "c":
			m.query = shared.TableQuery{Page: 1, PerPage: m.query.PerPage}
			return m.load()
		case "/":
			return m.newRequest(internal.InputView, internal.SearchRequest, m.query.Search)
		case "o":
			return m.newRequest(internal.SortView, internal.SortRequest, m.query.SortBy)
		case "e":
			return m.newRequest(internal.ExportView, internal.ExportRequest, m.name)
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.quitting || m.ViewRequest.View > internal.NullView {
		return ""
	}

	title := m.meta.DisplayName
	if len(title) == 0 {
		title = m.name
	}

	dataView := styles.BaseStyle.Render(m.table.View())
	if m.status.Err != nil {
		dataView += "\n✗ Error: " + m.status.Err.Error()
	} else if len(m.status.Success) > 0 {
		dataView += "\n" + styles.SuccessStyle.Render(m.status.Success)
	} else if m.status.Processing {
		dataView += "\n" + m.spinner.View() + " " + m.status.Message
	} else {
		dataView += "\n " + DescribePage(globals.Data.Pagination(), m.query)
	}

	return styles.BoldStyle.Render("DataShare > "+title) + "\n" +
		dataView + "\n" +
		styles.HelpStyle.Render(Help)
}

// load fetches the page described by the current query.
func (m Model) load() (tea.Model, tea.Cmd) {
	m.status = Status{Processing: true, Message: "Loading rows..."}
	return m, tea.Batch(m.spinner.Tick, fetchPage(m.name, m.query))
}

func (m Model) newRequest(
	view internal.View,
	req internal.RequestType,
	value string,
) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View:  view,
		Type:  req,
		Name:  m.name,
		Value: value,
	}

	return m, tea.Quit
}

func fetchPage(name string, query shared.TableQuery) tea.Cmd {
	return func() tea.Msg {
		_, err := globals.Data.FetchTableData(name, query)
		if err != nil {
			return pageMsg{err: errors.New(globals.Data.Err())}
		}

		return pageMsg{}
	}
}

func export(name string, format shared.ExportFormat) tea.Cmd {
	return func() tea.Msg {
		path, err := globals.Data.Export(name, format, globals.Config.DownloadDir)
		if err != nil {
			return exportDoneMsg{err: errors.New(globals.Data.Err())}
		}

		return exportDoneMsg{path: path}
	}
}
