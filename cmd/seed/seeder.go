// Package main provides the seed command for populating the database with
// the default category vocabulary and documentation sections. Seeders can run
// individually or together within a single transaction.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
)

// Seeder populates one domain's default records.
type Seeder interface {
	Name() string
	Description() string

	// Seed writes data within tx. Seeders must be safe to re-run.
	Seed(ctx context.Context, tx *sql.Tx, data *SeedData) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the registry. Seeders self-register via init().
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// runSeeders executes the named seeders, or every seeder when names is empty,
// within a single transaction. Any failure rolls the whole run back.
func runSeeders(ctx context.Context, db *sql.DB, data *SeedData, names ...string) error {
	selected := listSeeders()
	if len(names) > 0 {
		selected = selected[:0:0]
		for _, name := range names {
			s, ok := getSeeder(name)
			if !ok {
				return fmt.Errorf("seeder not found: %s", name)
			}
			selected = append(selected, s)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, s := range selected {
		if err := s.Seed(ctx, tx, data); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
