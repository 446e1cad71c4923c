package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Header     lipgloss.Style
	Help       lipgloss.Style
	InputBox   lipgloss.Style
	InputLabel lipgloss.Style

	LineNumber lipgloss.Style
	Plain      lipgloss.Style
	Captured   lipgloss.Style
	Unmatched  lipgloss.Style
	Diagnostic lipgloss.Style
	FileHeader lipgloss.Style

	CompileErr lipgloss.Style
	ErrCaret   lipgloss.Style

	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusGood lipgloss.Style
	StatusBad  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		InputLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true),

		LineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Plain: lipgloss.NewStyle(),
		Captured: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Unmatched: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")),
		Diagnostic: lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")),
		FileHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true).
			Underline(true),

		CompileErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		ErrCaret: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Background(lipgloss.Color("236")).
			Bold(true),
		StatusGood: lipgloss.NewStyle().
			Foreground(lipgloss.Color("76")).
			Background(lipgloss.Color("236")),
		StatusBad: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Background(lipgloss.Color("236")),
	}
}
