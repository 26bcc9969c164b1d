package files

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	hspinner "github.com/charmbracelet/huh/spinner"

	"datashare/cli/commands/confirmation"
	"datashare/cli/commands/filepicker"
	"datashare/cli/commands/files/preview"
	"datashare/cli/commands/input"
	"datashare/cli/commands/internal"
	"datashare/cli/globals"
	"datashare/cli/router"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
)

// CreateFileRows converts files into table rows, in the order the server
// returned them.
func CreateFileRows(files []shared.File) []table.Row {
	rows := []table.Row{}
	for idx, file := range files {
		sharedStr := "-"
		if file.IsShared {
			sharedStr = "yes"
		}

		uploader := file.Uploader
		if len(uploader) == 0 {
			uploader = "-"
		}

		rows = append(rows, table.Row{
			fmt.Sprintf("%d | %s", idx+1, file.Filename),
			shared.ReadableFileSize(file.Size),
			FormatDate(file.CreatedAt),
			sharedStr,
			uploader,
		})
	}

	return rows
}

// FormatDate trims a server timestamp down to its date. Anything that
// doesn't look like a timestamp is returned as-is.
func FormatDate(timestamp string) string {
	if len(timestamp) >= 10 && timestamp[4] == '-' && timestamp[7] == '-' {
		return timestamp[:10]
	}

	if len(timestamp) == 0 {
		return "-"
	}

	return timestamp
}

func fetchFiles() error {
	var errs []error
	if _, err := globals.Files.Fetch(); err != nil {
		errs = append(errs, errors.New(globals.Files.Err()))
	}

	if _, err := globals.Files.FetchShared(); err != nil {
		errs = append(errs, errors.New(globals.Files.Err()))
	}

	if globals.Session.IsAdmin() {
		if _, err := globals.Files.FetchAll(); err != nil {
			errs = append(errs, errors.New(globals.Files.Err()))
		}
	}

	return errors.Join(errs...)
}

// StartList is the list shown when the files view opens.
var StartList = OwnFiles

func NewModel() Model {
	var fetchErr error
	_ = hspinner.New().Title("Fetching files...").Action(func() {
		fetchErr = fetchFiles()
	}).Run()

	if fetchErr != nil {
		log.Printf("files: %v\n", fetchErr)
	}

	columns := []table.Column{
		{Title: "Name", Width: 15},
		{Title: "Size", Width: 10},
		{Title: "Uploaded", Width: 10},
		{Title: "Shared", Width: 6},
		{Title: "Uploader", Width: 10},
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		list:     StartList,
		init:     true,
		table:    styles.NewTable(columns, CreateFileRows(globals.Files.Files()), 10),
		spinner:  s,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		status:   Status{Err: fetchErr},
	}
}

// handleEvent starts whatever action the finished subview asked for.
func (m Model) handleEvent(event internal.Event) Model {
	m.pending = nil
	if event.Status != internal.StatusOk {
		return m
	}

	switch event.Type {
	case internal.UploadFileRequest:
		isShared, _ := event.Data.(bool)
		m.status = Status{
			Processing: true,
			Uploading:  true,
			Message:    fmt.Sprintf("Uploading '%s'", filepath.Base(event.Value)),
		}
		m.pending = tea.Batch(upload(event.Value, isShared), progressTick())
	case internal.DeleteFileRequest:
		m.status = Status{
			Processing: true,
			Message:    fmt.Sprintf("Deleting '%s'...", event.Value),
		}
		m.pending = deleteFile(event.ID, event.Value)
	case internal.RenameFileRequest:
		m.status = Status{
			Processing: true,
			Message:    fmt.Sprintf("Renaming to '%s'...", event.Value),
		}
		m.pending = rename(event.ID, event.Value)
	}

	return m
}

func RunFilesModel(m Model, event internal.Event) (Model, error) {
	if !m.init {
		m = NewModel()
	}

	m.IncomingEvent = event
	m.ViewRequest = internal.ViewRequest{}
	m = m.handleEvent(event)
	m.refreshRows()

	model, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, err
	}

	return model.(Model), nil
}

func runSubview(req internal.ViewRequest) (internal.Event, error) {
	switch req.View {
	case internal.FilePickerView:
		return filepicker.RunModel()
	case internal.ConfirmationView:
		return confirmation.RunModel(req.Type, req.ID, req.Name)
	case internal.InputView:
		event, err := input.RunModel(
			req.Type,
			"Rename File",
			fmt.Sprintf("Enter a new name for '%s'", req.Name),
			req.Name,
			true)
		event.ID = req.ID
		if event.Status == internal.StatusOk && event.Value == req.Name {
			return internal.Canceled(req.Type), err
		}

		return event, err
	case internal.PreviewView:
		file, ok := findFile(req.ID)
		if !ok {
			return internal.Event{}, fmt.Errorf("file %d not found", req.ID)
		}

		return internal.Canceled(req.Type), preview.RunModel(file)
	}

	return internal.Event{}, nil
}

func findFile(id int) (shared.File, bool) {
	lists := [][]shared.File{
		globals.Files.Files(),
		globals.Files.SharedFiles(),
		globals.Files.AllFiles(),
	}

	for _, list := range lists {
		for _, file := range list {
			if file.ID == id {
				return file, true
			}
		}
	}

	return shared.File{}, false
}

// ShowFilesModel runs the files table, dropping into subviews (file picker,
// confirmation, rename, preview) whenever the table asks for one.
func ShowFilesModel(_ router.Location) router.Location {
	m := NewModel()
	if !globals.Session.IsAuthenticated() {
		return router.Location{}
	}

	m, err := RunFilesModel(m, internal.Event{})
	for err == nil && m.ViewRequest.View > internal.NullView {
		event, subviewErr := runSubview(m.ViewRequest)
		if errors.Is(subviewErr, huh.ErrUserAborted) {
			event = internal.Canceled(m.ViewRequest.Type)
		} else if subviewErr != nil {
			m.status = Status{Err: subviewErr}
			event = internal.Event{}
		}

		if !globals.Session.IsAuthenticated() {
			return router.Location{}
		}

		m, err = RunFilesModel(m, event)
	}

	utils.HandleCLIError("Error in files view", err)
	return m.Next
}
