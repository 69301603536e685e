package dataset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ModelSuffix names the model trained from a discovered dataset.
const ModelSuffix = "_model.json"

// Discover returns the CSV files directly inside dir, sorted by path.
// Subdirectories are not searched.
func Discover(dir string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover datasets: %w", err)
	}
	sort.Strings(entries)
	return entries, nil
}

// ModelPath returns where the model for dataset is saved: the dataset's
// base name without extension plus ModelSuffix, inside outDir.
//
//	data/iris.csv -> <outDir>/iris_model.json
func ModelPath(outDir, dataset string) string {
	base := filepath.Base(dataset)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+ModelSuffix)
}
