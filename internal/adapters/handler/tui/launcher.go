package tui

import (
	"fmt"
	"os"
	"os/exec"
)

// DetachedLauncher starts `<this binary> render <csv>` and does not wait for it.
func DetachedLauncher(csvPath string) error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("analyze: locate executable: %w", err)
	}

	cmd := exec.Command(self, "render", csvPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("analyze: start chart process: %w", err)
	}
	return cmd.Process.Release()
}
