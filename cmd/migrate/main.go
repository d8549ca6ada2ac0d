// Command migrate applies or reverts the embedded schema migrations.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/portfolio-admin/internal/config"
	"github.com/JaimeStill/portfolio-admin/internal/migrations"
	"github.com/JaimeStill/portfolio-admin/pkg/database"
)

func main() {
	steps := flag.Int("steps", 1, "Migrations to revert with down")
	flag.Usage = func() {
		fmt.Println("usage: migrate [-steps n] up|down|version")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		v, err := database.Migrate(db, migrations.FS)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("schema at version %d\n", v)

	case "down":
		if *steps < 1 {
			log.Fatalf("steps must be positive, got %d", *steps)
		}
		v, err := database.Rollback(db, migrations.FS, *steps)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("schema at version %d\n", v)

	case "version":
		v, dirty, err := database.Version(db, migrations.FS)
		if err != nil {
			log.Fatal(err)
		}
		if dirty {
			fmt.Printf("schema at version %d (dirty)\n", v)
			return
		}
		fmt.Printf("schema at version %d\n", v)

	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
