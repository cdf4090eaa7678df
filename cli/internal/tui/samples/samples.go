// ABOUTME: Finds the example well spreadsheets shipped in the repository
// ABOUTME: The directory comes from SEPARATOR_SAMPLES_PATH or ./samples

package samples

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// PathEnv overrides the samples directory
const PathEnv = "SEPARATOR_SAMPLES_PATH"

// SampleFile is one spreadsheet found in the samples directory
type SampleFile struct {
	Name string
	Path string
}

// IsWellTable reports whether path has an extension the classify endpoint
// accepts: .csv, .xlsx or .xlsm, in any case.
func IsWellTable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// Discover lists the spreadsheets directly inside dir, sorted by name. A
// missing dir yields an empty list.
func Discover(dir string) ([]SampleFile, error) {
	files := []SampleFile{}
	if dir == "" {
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return files, nil
	}
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.Type().IsRegular() && IsWellTable(e.Name()) {
			files = append(files, SampleFile{Name: e.Name(), Path: filepath.Join(dir, e.Name())})
		}
	}
	slices.SortFunc(files, func(a, b SampleFile) int { return strings.Compare(a.Name, b.Name) })
	return files, nil
}

// FindSamplesDir returns PathEnv when it names a directory, else
// basePath/samples when that exists, else "".
func FindSamplesDir(basePath string) string {
	for _, dir := range []string{os.Getenv(PathEnv), filepath.Join(basePath, "samples")} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
