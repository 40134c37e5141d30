package sequences

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load reads a single sequence configuration from disk.
func Load(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sequence path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sequence %s: %w", path, err)
	}

	f, err := parseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parse sequence %s: %w", path, err)
	}
	f.Source = path
	return f, nil
}

// LoadDir loads all sequence configurations from a directory, sorted by
// name. A missing directory yields an empty list.
func LoadDir(dir string) ([]*File, error) {
	if strings.TrimSpace(dir) == "" {
		return []*File{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*File{}, nil
		}
		return nil, fmt.Errorf("read sequences dir %s: %w", dir, err)
	}

	files := make([]*File, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		f, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}
