package tui

import "github.com/charmbracelet/lipgloss"

// Palette holds the colours a theme is built from
type Palette struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Focus   lipgloss.Color
	Good    lipgloss.Color
	Bad     lipgloss.Color
	Warning lipgloss.Color
}

var palettes = map[string]Palette{
	"default": {
		Text: "#FAFAFA", Muted: "#626262", Accent: "#2E8B57", Focus: "#04B575",
		Good: "#96CEB4", Bad: "#FF6B6B", Warning: "#FFEAA7",
	},
	"dark": {
		Text: "#E0E0E0", Muted: "#5C5C5C", Accent: "#3A5F0B", Focus: "#7FB069",
		Good: "#7FB069", Bad: "#E4572E", Warning: "#F3CA40",
	},
	"light": {
		Text: "#1E1E1E", Muted: "#8A8A8A", Accent: "#1B5E20", Focus: "#2E7D32",
		Good: "#2E7D32", Bad: "#C62828", Warning: "#EF6C00",
	},
}

// Styles for content elements, rebuilt by SetTheme
var (
	palette Palette

	HeaderStyle     lipgloss.Style
	LogStyle        lipgloss.Style
	PromptStyle     lipgloss.Style
	ActionsStyle    lipgloss.Style
	PlayerInfoStyle lipgloss.Style
	SuccessStyle    lipgloss.Style
	ErrorStyle      lipgloss.Style
	WarningStyle    lipgloss.Style
	InfoStyle       lipgloss.Style
)

func init() {
	SetTheme("default")
}

// SetTheme selects a palette by name, falling back to the default
func SetTheme(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["default"]
	}
	palette = p

	HeaderStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(p.Accent).
		Bold(true).
		Padding(0, 1)

	LogStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	PromptStyle = lipgloss.NewStyle().
		Foreground(p.Good).
		Bold(true)

	ActionsStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	PlayerInfoStyle = lipgloss.NewStyle().
		Foreground(p.Text)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Good).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Bad).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	InfoStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}
