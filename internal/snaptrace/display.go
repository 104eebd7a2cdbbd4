package snaptrace

import (
	"os"
	"path/filepath"
)

// Display presents an encoded movie: a file, a window, ...
type Display interface {
	Show(m *Movie) error
}

// FileDisplay writes the GIF bytes to Path.
type FileDisplay struct {
	Path string
}

func (d FileDisplay) Show(m *Movie) error {
	if dir := filepath.Dir(d.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(d.Path, m.Data, 0o644); err != nil {
		return err
	}
	DebugLog("Saved animated GIF: %s", d.Path)
	return nil
}
