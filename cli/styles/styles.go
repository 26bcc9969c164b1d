package styles

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var Theme = DataShareTheme()

var (
	white       = lipgloss.Color("#ffffff")
	gray        = lipgloss.Color("#a6adc8")
	accent      = lipgloss.Color("#2f6fdf")
	accentLight = lipgloss.Color("#6f9ff0")
	shared      = lipgloss.Color("#3EB974")
	warning     = lipgloss.Color("#e0a53a")
	destructive = lipgloss.Color("#a83c3c")
)

func DataShareTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(white)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(white).Bold(true)
	t.Focused.Directory = t.Focused.Directory.Foreground(accentLight)
	t.Focused.Description = t.Focused.Description.Foreground(gray)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(destructive)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(destructive)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(accentLight).Bold(true)
	t.Focused.Option = t.Focused.Option.PaddingLeft(1).PaddingRight(1).Foreground(gray)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(white).PaddingLeft(1).PaddingRight(1)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(accentLight)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.PaddingLeft(1).PaddingRight(1)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(white).Background(accent)

	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(white)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(gray)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(accentLight)

	t.Help = help.New().Styles

	// Blurred styles.
	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	return t
}

var (
	BaseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	AdminStyle   = lipgloss.NewStyle().Foreground(accentLight).Bold(true)
	SharedStyle  = lipgloss.NewStyle().Foreground(shared)
	OfflineStyle = lipgloss.NewStyle().Foreground(gray)
	NoticeStyle  = lipgloss.NewStyle().Foreground(warning)
	BoldStyle    = lipgloss.NewStyle().Bold(true).Foreground(Theme.Focused.NoteTitle.GetForeground())
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(Theme.Focused.FocusedButton.GetForeground())
	ErrStyle     = lipgloss.NewStyle().Foreground(Theme.Focused.ErrorMessage.GetForeground())
	SuccessStyle = lipgloss.NewStyle().Foreground(shared)
)

func PrintErrStr(errMsg string) {
	fmt.Println(ErrStyle.Render(errMsg))
}

func PrintNotice(msg string) {
	fmt.Println(NoticeStyle.Render(msg))
}

func PrintSuccess(msg string) {
	fmt.Println(SuccessStyle.Render(msg))
}

// DestructiveTheme is used for confirmations of irreversible actions (deleting
// files or users).
func DestructiveTheme() *huh.Theme {
	t := *Theme

	red := lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}

	t.Focused.Base = t.Focused.Base.BorderForeground(lipgloss.Color("238"))
	t.Focused.Title = t.Focused.Title.Foreground(red).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(red)

	return &t
}
