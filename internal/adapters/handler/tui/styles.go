package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7FB3FF"))
	quoteStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#9A9A9A"))
	labelStyle    = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("#BBBBBB"))
	timerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5C26B"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	parentStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8FD694"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	ruleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))

	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB3FF"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5C26B"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)
