package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

// Sink turns aggregates into a viewable artifact.
type Sink interface {
	RenderOverview(w io.Writer, ov *domain.Overview) error
	RenderDashboard(w io.Writer, d *domain.Dashboard) error
}

// OverviewFile renders the overview into path, creating parent directories.
func OverviewFile(s Sink, ov *domain.Overview, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := s.RenderOverview(f, ov); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
