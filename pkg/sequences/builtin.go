package sequences

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin returns the sequence configurations bundled with the engine,
// sorted by name.
func Builtin() ([]*File, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin sequences: %w", err)
	}

	files := make([]*File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin sequence %s: %w", entry.Name(), err)
		}
		f, err := parseFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin sequence %s: %w", entry.Name(), err)
		}
		f.Source = "builtin"
		files = append(files, f)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Find returns the named configuration, searching dir (when non-empty)
// before the builtin set.
func Find(name, dir string) (*File, error) {
	if dir != "" {
		files, err := LoadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if f.Name == name {
				return f, nil
			}
		}
	}
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	for _, f := range builtin {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("sequence %q not found", name)
}
