package fs

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/placefinder"
)

// WriteExport writes the export document for places to path, creating
// parent directories as needed. If path is a directory the document is
// written as placefinder.ExportFilename inside it.
func WriteExport(path string, places []*placefinder.PlaceDetails) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, placefinder.ExportFilename)
	}

	data, err := placefinder.Export(places)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
