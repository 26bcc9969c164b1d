package preview

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"

	"datashare/cli/api"
	"datashare/cli/globals"
	"datashare/cli/styles"
	"datashare/cli/utils"
	"datashare/shared"
	"datashare/shared/constants"
)

const (
	width  = 80
	height = 20
)

const Help = "↑/↓ -> scroll | q -> return to files"

type Model struct {
	title    string
	viewport viewport.Model
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return utils.GenerateTitle(m.title) + "\n" +
		styles.BaseStyle.Render(m.viewport.View()) + "\n" +
		styles.HelpStyle.Render(fmt.Sprintf("%3.f%% | %s", m.viewport.ScrollPercent()*100, Help))
}

func NewModel(title, content string) Model {
	vp := viewport.New(width, height)
	vp.SetContent(content)
	return Model{title: title, viewport: vp}
}

func generateInfoView(file shared.File) string {
	info := fmt.Sprintf("Size: %s\n", shared.ReadableFileSize(file.Size))
	if len(file.CreatedAt) > 0 {
		info += fmt.Sprintf("Uploaded: %s\n", file.CreatedAt)
	}

	if len(file.Uploader) > 0 {
		info += fmt.Sprintf("Uploader: %s\n", shared.EscapeString(file.Uploader))
	}

	return info
}

func showNote(file shared.File, content string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(utils.GenerateTitle(file.Filename)).
				Description(utils.GenerateDescriptionSection(
					"Info",
					generateInfoView(file)+"\n"+content,
					24)),
		)).WithTheme(styles.Theme).Run()
}

// RunModel downloads a file into memory and shows it in the terminal. Files
// over constants.MaxPreviewSize are not downloaded at all.
func RunModel(file shared.File) error {
	var contents []byte
	var err error
	if file.Size <= constants.MaxPreviewSize {
		_ = spinner.New().Title("Fetching file...").Action(func() {
			var download api.Download
			download, err = globals.API.DownloadFile(file.ID)
			contents = download.Contents
			if contents == nil && err == nil {
				contents = []byte{}
			}
		}).Run()
	}

	if err != nil {
		return errors.New(utils.ErrorMessage(err, "Failed to download file"))
	}

	switch Classify(file.Filename, contents) {
	case Text:
		_, err = tea.NewProgram(NewModel(file.Filename, string(contents))).Run()
		return err
	case Image:
		ascii, imgErr := imageToAscii(contents, width, height)
		if imgErr != nil {
			return showNote(file, "Unable to decode image")
		}

		_, err = tea.NewProgram(NewModel(file.Filename, ascii)).Run()
		return err
	case Binary:
		return showNote(file, "Unable to preview file in CLI app")
	default:
		return showNote(file, "File too large to preview")
	}
}
