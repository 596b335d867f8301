package ui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle ANSI 6 (cyan) reads well on light and dark terminals.
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle ANSI 2 (green) for arguments and usage lines.
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (gray) keeps descriptions quieter than the commands they describe.
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle ANSI 3 (yellow) for flags.
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	PromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	SpeakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func Prompt(s string) string { return PromptStyle.Render(s) }

func Speaker(s string) string { return SpeakerStyle.Render(s) }

func Error(s string) string { return ErrorStyle.Render(s) }

func Banner(s string) string { return TitleStyle.Render(s) }
