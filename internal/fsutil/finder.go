// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoReports is returned when discovery finds nothing to parse.
var ErrNoReports = errors.New("no report files found")

// DefaultReportExtensions are the file extensions treated as mpiP reports
// when walking a directory. The empty string matches files without an
// extension.
var DefaultReportExtensions = []string{".txt", ".out", ".log", ".mpiP", ""}

// FindReports resolves the input path of a run. A regular file is returned
// as-is. A directory is walked recursively for non-empty files whose
// extension is in extensions. The result is sorted.
func FindReports(rootPath string, extensions []string) ([]string, error) {
	info, err := os.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return []string{rootPath}, nil
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[ext] = struct{}{}
	}

	var files []string
	err = filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := allowed[filepath.Ext(d.Name())]; !ok {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Mode().IsRegular() && fi.Size() > 0 {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, rootPath)
	}
	sort.Strings(files)
	return files, nil
}
