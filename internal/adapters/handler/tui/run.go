package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the form full screen. When logFile is set the standard logger is redirected to it
// so log lines do not corrupt the screen.
func Run(opts Options, logFile string) error {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "concentria")
		if err != nil {
			return fmt.Errorf("tui: open log file: %w", err)
		}
		defer f.Close()
	}

	if _, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
