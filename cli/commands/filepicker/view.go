package filepicker

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"datashare/cli/commands/internal"
	"datashare/cli/styles"
)

const Help = "q -> cancel | Enter -> select file | Backspace -> parent dir"

type Model struct {
	Event      internal.Event
	filepicker filepicker.Model
	quitting   bool
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Event = internal.Canceled(internal.UploadFileRequest)
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	// Check if the user has selected a file
	if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
		m.quitting = true
		m.Event = internal.Event{
			Value:  path,
			Status: internal.StatusOk,
			Type:   internal.UploadFileRequest,
		}
		return m, tea.Quit
	}

	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	return styles.BoldStyle.Render("Select a file to upload:") + "\n" +
		m.filepicker.Styles.Directory.Render(
			m.filepicker.CurrentDirectory,
		) + "\n" +
		styles.BaseStyle.Render(m.filepicker.View()) + "\n" +
		styles.HelpStyle.Render(Help)
}

func NewModel() Model {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AutoHeight = false
	fp.Height = 20
	fp.ShowPermissions = true

	return Model{filepicker: fp}
}

// RunModel lets the user pick a file, then asks whether the upload should be
// shared with other users. Event.Data holds the share choice as a bool.
func RunModel() (internal.Event, error) {
	model, err := tea.NewProgram(NewModel()).Run()
	if err != nil {
		return internal.Event{}, err
	}

	event := model.(Model).Event
	if event.Status != internal.StatusOk {
		return event, nil
	}

	var isShared bool
	err = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Share this file?").
			Description("Shared files are visible to every user").
			Affirmative("Share").
			Negative("Keep private").
			Value(&isShared),
	)).WithTheme(styles.Theme).Run()

	event.Data = isShared
	return event, err
}
