package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/JaimeStill/portfolio-admin/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const EnvDatabaseDSN = "DATABASE_DSN"

func main() {
	var (
		dsn  = flag.String("dsn", "", "Database connection string (defaults to config.toml)")
		all  = flag.Bool("all", false, "Run all seeders")
		only = flag.String("only", "", "Comma-separated seeders to run")
		file = flag.String("file", "", "External seed file (overrides embedded)")
		list = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && *only == "" {
		fmt.Println("usage: seed [-dsn <connection-string>] [-all|-only <names>] [-file <path>] [-list]")
		flag.PrintDefaults()
		return
	}

	data, err := loadSeedData(*file)
	if err != nil {
		log.Fatalf("load seed data: %v", err)
	}

	connStr, err := resolveDSN(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var names []string
	if !*all {
		for _, name := range strings.Split(*only, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	if err := runSeeders(context.Background(), db, data, names...); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	fmt.Println("seeding completed successfully")
}

// resolveDSN prefers the flag, then DATABASE_DSN, then the service configuration.
func resolveDSN(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := os.Getenv(EnvDatabaseDSN); v != "" {
		return v, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("database connection string required: use -dsn, %s, or a valid config.toml: %w", EnvDatabaseDSN, err)
	}
	return cfg.Database.Dsn(), nil
}
