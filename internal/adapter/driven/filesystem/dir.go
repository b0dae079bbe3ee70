// Package filesystem implements the workspace, balance snapshot and token
// file ports on top of a local directory.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Workspace = (*Dir)(nil)

// Dir is a workspace rooted at a local directory.
type Dir struct {
	root string
}

// NewDir creates a Dir rooted at root. An empty root means the current directory.
func NewDir(root string) *Dir {
	if root == "" {
		root = "."
	}
	return &Dir{root: root}
}

// Path returns the full path of name inside the workspace. Absolute names
// are returned unchanged.
func (d *Dir) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.root, name)
}

// WriteText writes content to name as UTF-8, replacing any existing file.
func (d *Dir) WriteText(name, content string) error {
	if err := os.WriteFile(d.Path(name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ReadText returns the content of name.
func (d *Dir) ReadText(name string) (string, error) {
	data, err := os.ReadFile(d.Path(name))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// Exists reports whether name is an existing regular file.
func (d *Dir) Exists(name string) bool {
	info, err := os.Stat(d.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Move relocates name into subdir and returns the new relative name.
func (d *Dir) Move(name, subdir string) (string, error) {
	if err := os.MkdirAll(d.Path(subdir), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", subdir, err)
	}

	dest := filepath.Join(subdir, filepath.Base(name))
	if err := os.Rename(d.Path(name), d.Path(dest)); err != nil {
		return "", fmt.Errorf("move %s to %s: %w", name, subdir, err)
	}
	return dest, nil
}

// FindOne returns the single regular file in the root whose name ends in suffix.
func (d *Dir) FindOne(suffix string) (string, error) {
	names, err := d.list(func(name string) bool { return strings.HasSuffix(name, suffix) })
	if err != nil {
		return "", err
	}

	switch len(names) {
	case 1:
		return names[0], nil
	case 0:
		return "", fmt.Errorf("no file ending in %s found in %s", suffix, d.root)
	default:
		return "", fmt.Errorf("more than one file ending in %s found in %s: %s", suffix, d.root, strings.Join(names, ", "))
	}
}

// list returns the sorted names of regular files in the root accepted by keep.
func (d *Dir) list(keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !keep(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
