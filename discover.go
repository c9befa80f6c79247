package pdf2md

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DiscoverFiles returns the paths of all files with the given extension
// (case-insensitive, e.g. ".pdf") directly inside dirPath, in directory
// order. Subdirectories are not descended into.
func DiscoverFiles(dirPath, ext string) ([]string, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read directory %s", dirPath)
	}

	var paths []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			paths = append(paths, filepath.Join(dirPath, entry.Name()))
		}
	}

	return paths, nil
}

// DiscoverPDFs returns the paths of all PDF files directly inside dirPath.
func DiscoverPDFs(dirPath string) ([]string, error) {
	return DiscoverFiles(dirPath, ".pdf")
}
