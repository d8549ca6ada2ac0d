package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/JaimeStill/portfolio-admin/internal/categories"
	"github.com/pelletier/go-toml/v2"
)

//go:embed seeds/*.toml
var seedFiles embed.FS

// SeedData is the layout of a seed file.
type SeedData struct {
	Categories []CategorySeed `toml:"categories"`
	Sections   []SectionSeed  `toml:"sections"`
}

// CategorySeed lists the default vocabulary of one scope.
type CategorySeed struct {
	Scope categories.Scope `toml:"scope"`
	Names []string         `toml:"names"`
}

// SectionSeed describes one default documentation section.
type SectionSeed struct {
	Name        string `toml:"name"`
	Slug        string `toml:"slug"`
	Description string `toml:"description"`
	SortOrder   int    `toml:"sort_order"`
}

// loadSeedData reads path, or the embedded defaults when path is empty.
func loadSeedData(path string) (*SeedData, error) {
	var content []byte
	var err error

	if path != "" {
		content, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/defaults.toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data SeedData
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}

	for _, c := range data.Categories {
		if !c.Scope.Valid() {
			return nil, fmt.Errorf("invalid category scope: %q", c.Scope)
		}
	}

	return &data, nil
}
