// Package config loads the declarative category files describing which
// books the catalog should contain. One YAML file per category, a folder
// per file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Book is one desired catalog entry.
type Book struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Filename    string `yaml:"filename"`
	URL         string `yaml:"url"`
	GutenbergID int    `yaml:"gutenberg_id"`
	Note        string `yaml:"note"`
}

// Category is one declarative book list.
type Category struct {
	Name  string `yaml:"category"`
	Books []Book `yaml:"books"`

	// Folder is the output directory name, derived from the YAML file's
	// basename without extension.
	Folder string `yaml:"-"`
}

// Load reads and validates a single category file.
func Load(path string) (*Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cat Category
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if len(cat.Books) == 0 {
		return nil, fmt.Errorf("config %s has no books list", path)
	}

	cat.Folder = strings.TrimSuffix(filepath.Base(path), ".yaml")
	if cat.Name == "" {
		cat.Name = cat.Folder
	}
	return &cat, nil
}

// Discover finds all valid category files in dir, sorted by basename.
// Files that fail to parse or have no books list are silently skipped;
// a books directory may hold unrelated YAML.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var valid []string
	for _, path := range matches {
		if _, err := Load(path); err == nil {
			valid = append(valid, path)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		return filepath.Base(valid[i]) < filepath.Base(valid[j])
	})
	return valid, nil
}
