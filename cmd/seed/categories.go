package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/portfolio-admin/internal/fields"
)

func init() {
	registerSeeder(&CategorySeeder{})
}

// CategorySeeder inserts the default category vocabulary of each scope.
// Existing categories are left untouched.
type CategorySeeder struct{}

func (s *CategorySeeder) Name() string {
	return "categories"
}

func (s *CategorySeeder) Description() string {
	return "Seeds the default project and certification categories"
}

func (s *CategorySeeder) Seed(ctx context.Context, tx *sql.Tx, data *SeedData) error {
	const query = `
		INSERT INTO categories (scope, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope, slug) DO NOTHING`

	for _, c := range data.Categories {
		for _, name := range c.Names {
			slug := fields.DeriveSlug("", name)
			if _, err := tx.ExecContext(ctx, query, string(c.Scope), name, slug); err != nil {
				return fmt.Errorf("insert category %s/%s: %w", c.Scope, slug, err)
			}
		}
	}
	return nil
}
