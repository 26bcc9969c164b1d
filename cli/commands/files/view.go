package files

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"datashare/cli/commands/internal"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/shared"
)

type List int

const (
	OwnFiles List = iota
	SharedFiles
	AllFiles
)

func (l List) String() string {
	switch l {
	case SharedFiles:
		return "Shared Files"
	case AllFiles:
		return "All Files"
	default:
		return "My Files"
	}
}

type Model struct {
	IncomingEvent internal.Event
	ViewRequest   internal.ViewRequest
	Next          router.Location

	list     List
	init     bool
	quitting bool
	pending  tea.Cmd
	table    table.Model
	spinner  spinner.Model
	progress progress.Model
	status   Status
}

type Status struct {
	Processing bool
	Uploading  bool
	Message    string
	Success    string
	Err        error
}

type actionDoneMsg struct {
	success string
	err     error
}

type progressTickMsg struct{}

const Help = `
Tab -> switch list | u -> upload | d -> download | p -> preview | y -> copy id |
x ---> delete      | r -> rename | s -> share    | c -> copy    | b -> back | q -> quit`

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pending)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.status.Processing {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	case progressTickMsg:
		if m.status.Uploading {
			cmds = append(cmds, progressTick())
		}
	case actionDoneMsg:
		m.status = Status{Success: msg.success}
		if msg.err != nil {
			m.status = Status{Err: msg.err}
		}

		if !globals.Session.IsAuthenticated() {
			m.quitting = true
			return m, tea.Quit
		}

		m.refreshRows()
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
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "b", "esc":
			m.quitting = true
			m.Next = router.To(router.Dashboard)
			return m, tea.Quit
		case "tab":
			m.list = m.nextList()
			m.refreshRows()
			return m, nil
		case "u":
			return m.NewUploadRequest()
		}

		file, ok := m.selected()
		if !ok {
			break
		}

		switch msg.String() {
		case "x":
			return m.NewDeleteRequest(file)
		case "r":
			return m.NewRenameRequest(file)
		case "p":
			return m.NewPreviewRequest(file)
		case "s":
			return m.startAction(
				fmt.Sprintf("Updating sharing for '%s'...", file.Filename),
				toggleShare(file))
		case "d":
			return m.startAction(
				fmt.Sprintf("Downloading '%s'...", file.Filename),
				download(file))
		case "c":
			if !file.IsShared {
				m.status.Err = errors.New("only shared files can be copied")
				return m, nil
			}
			return m.startAction(
				fmt.Sprintf("Copying '%s'...", file.Filename),
				copyFile(file))
		case "y":
			if err := clipboard.WriteAll(strconv.Itoa(file.ID)); err != nil {
				m.status.Err = err
			} else {
				m.status.Success = fmt.Sprintf("Copied file ID %d to clipboard", file.ID)
			}
			return m, nil
		}
	}

	if !m.status.Processing {
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting || m.ViewRequest.View > internal.NullView {
		return ""
	}

	filesView := styles.BaseStyle.Render(m.table.View())

	if m.status.Err != nil {
		filesView += "\n✗ Error: " + m.status.Err.Error()
	} else if len(m.status.Success) > 0 {
		filesView += "\n" + styles.SuccessStyle.Render(m.status.Success)
	} else if m.status.Uploading {
		percent := float64(globals.Files.UploadProgress()) / 100
		filesView += "\n " + m.status.Message + " " + m.progress.ViewAs(percent)
	} else if m.status.Processing {
		filesView += "\n" + m.spinner.View() + " " + m.status.Message
	} else {
		filesView += fmt.Sprintf("\n %d files, %s",
			globals.Files.TotalFiles(),
			styles.SharedStyle.Render(fmt.Sprintf("%d shared", globals.Files.TotalSharedFiles())))
	}

	return styles.BoldStyle.Render("DataShare > "+m.list.String()) + "\n" +
		filesView + "\n" +
		styles.HelpStyle.Render(Help)
}

func (m Model) nextList() List {
	next := m.list + 1
	if next == AllFiles && !globals.Session.IsAdmin() {
		next++
	}

	if next > AllFiles {
		return OwnFiles
	}

	return next
}

func (m Model) items() []shared.File {
	switch m.list {
	case SharedFiles:
		return globals.Files.SharedFiles()
	case AllFiles:
		return globals.Files.AllFiles()
	default:
		return globals.Files.Files()
	}
}

func (m Model) selected() (shared.File, bool) {
	items := m.items()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(items) {
		return shared.File{}, false
	}

	return items[cursor], true
}

func (m *Model) refreshRows() {
	m.table.SetRows(CreateFileRows(m.items()))
	m.table.SetCursor(m.table.Cursor())
}

// startAction runs action in the background, showing message with a spinner
// until it finishes.
func (m Model) startAction(message string, action tea.Cmd) (tea.Model, tea.Cmd) {
	m.status = Status{Processing: true, Message: message}
	return m, tea.Batch(m.spinner.Tick, action)
}

func progressTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}

	return errors.New(globals.Files.Err())
}

func upload(path string, isShared bool) tea.Cmd {
	return func() tea.Msg {
		_, err := globals.Files.Upload(path, isShared)
		return actionDoneMsg{
			success: fmt.Sprintf("Uploaded '%s'", filepath.Base(path)),
			err:     storeErr(err),
		}
	}
}

func deleteFile(id int, name string) tea.Cmd {
	return func() tea.Msg {
		err := globals.Files.Delete(id)
		return actionDoneMsg{
			success: fmt.Sprintf("Deleted '%s'", name),
			err:     storeErr(err),
		}
	}
}

func rename(id int, name string) tea.Cmd {
	return func() tea.Msg {
		_, err := globals.Files.Rename(id, name)
		return actionDoneMsg{
			success: fmt.Sprintf("Renamed to '%s'", name),
			err:     storeErr(err),
		}
	}
}

func toggleShare(file shared.File) tea.Cmd {
	return func() tea.Msg {
		resp, err := globals.Files.ToggleShare(file.ID, !file.IsShared)
		state := "private"
		if resp.IsShared {
			state = "shared"
		}

		return actionDoneMsg{
			success: fmt.Sprintf("'%s' is now %s", file.Filename, state),
			err:     storeErr(err),
		}
	}
}

func download(file shared.File) tea.Cmd {
	return func() tea.Msg {
		path, err := globals.Files.Download(file.ID, globals.Config.DownloadDir)
		return actionDoneMsg{
			success: fmt.Sprintf("File downloaded: %s", path),
			err:     storeErr(err),
		}
	}
}

func copyFile(file shared.File) tea.Cmd {
	return func() tea.Msg {
		resp, err := globals.Files.Copy(file.ID)
		return actionDoneMsg{
			success: fmt.Sprintf("Copied to your files as '%s'", resp.File.Filename),
			err:     storeErr(err),
		}
	}
}

func (m Model) NewDeleteRequest(file shared.File) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: internal.ConfirmationView,
		Type: internal.DeleteFileRequest,
		ID:   file.ID,
		Name: file.Filename,
	}

	return m, tea.Quit
}

func (m Model) NewRenameRequest(file shared.File) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: internal.InputView,
		Type: internal.RenameFileRequest,
		ID:   file.ID,
		Name: file.Filename,
	}

	return m, tea.Quit
}

func (m Model) NewPreviewRequest(file shared.File) (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: internal.PreviewView,
		Type: internal.PreviewFileRequest,
		ID:   file.ID,
		Name: file.Filename,
	}

	return m, tea.Quit
}

func (m Model) NewUploadRequest() (tea.Model, tea.Cmd) {
	m.ViewRequest = internal.ViewRequest{
		View: internal.FilePickerView,
		Type: internal.UploadFileRequest,
	}

	return m, tea.Quit
}
