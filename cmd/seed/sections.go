package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
)

func init() {
	registerSeeder(&SectionSeeder{})
}

// SectionSeeder creates the default documentation sections. Re-running it
// refreshes their description and sort order.
type SectionSeeder struct{}

func (s *SectionSeeder) Name() string {
	return "sections"
}

func (s *SectionSeeder) Description() string {
	return "Seeds the default documentation sections"
}

func (s *SectionSeeder) Seed(ctx context.Context, tx *sql.Tx, data *SeedData) error {
	const query = `
		INSERT INTO doc_sections (name, slug, description, sort_order)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (slug) DO UPDATE SET
			description = EXCLUDED.description,
			sort_order = EXCLUDED.sort_order,
			updated_at = NOW()`

	for _, section := range data.Sections {
		slug := fields.DeriveSlug(section.Slug, section.Name)
		if !fields.ValidSlug(slug) {
			return fmt.Errorf("invalid section slug: %q", slug)
		}
		if _, err := tx.ExecContext(ctx, query, section.Name, slug, section.Description, section.SortOrder); err != nil {
			return fmt.Errorf("save section %s: %w", slug, err)
		}
	}
	return nil
}
