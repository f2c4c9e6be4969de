package fs

import (
	"errors"
	"io/fs"
	"os"
	pathpkg "path"
	"path/filepath"
	"sort"
	"strings"
)

type LocalFileSystem struct{}

func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{}
}

// Checks if a file exists or not.
func (lfs *LocalFileSystem) Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Expands directories among targets into the regular files below them, in
// lexical order. Targets that are not local directories (files, "-", object
// URIs) are passed through untouched.
//
// An excludeDirs entry skips directories below a target whose name equals it,
// or whose slash-separated path relative to the target equals it when the entry
// contains a "/". Files are never excluded by name, and a target itself is
// always walked.
func (lfs *LocalFileSystem) Expand(targets []string, excludeDirs []string) ([]string, error) {
	out := make([]string, 0, len(targets))

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil || !info.IsDir() {
			out = append(out, target)
			continue
		}

		files := make([]string, 0)
		if err := filepath.WalkDir(target, func(path string, ds fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ds.IsDir() {
				if path == target {
					return nil
				}
				rel, err := filepath.Rel(target, path)
				if err != nil {
					return err
				}
				if isExcluded(excludeDirs, filepath.ToSlash(rel)) {
					return filepath.SkipDir
				}
				return nil
			}
			if ds.Type().IsRegular() {
				files = append(files, path)
			}
			return nil
		}); err != nil {
			return nil, err
		}

		sort.Strings(files)
		out = append(out, files...)
	}

	return out, nil
}

// isExcluded matches rel, a slash-separated directory path, by whole components.
func isExcluded(excludeDirs []string, rel string) bool {
	name := pathpkg.Base(rel)
	for _, excludeDir := range excludeDirs {
		excludeDir = strings.Trim(filepath.ToSlash(excludeDir), "/")
		switch {
		case excludeDir == "":
		case strings.Contains(excludeDir, "/"):
			if rel == excludeDir {
				return true
			}
		case name == excludeDir:
			return true
		}
	}
	return false
}
