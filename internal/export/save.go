package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes doc into dir under its own filename, creating dir if needed,
// and returns the written path.
func Save(dir string, doc *Document) (string, error) {
	if doc == nil {
		return "", errors.New("export: nothing to save")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", doc.Filename, err)
	}
	return path, nil
}
