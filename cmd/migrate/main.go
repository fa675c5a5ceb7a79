// Package main applies database migrations with goose.
//
// Usage:
//
//	migrate up      apply all pending migrations
//	migrate down    roll back the last migration
//	migrate status  print migration status
package main

import (
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"fornada/internal/config"
)

const migrationsDir = "migrations"

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	db, err := goose.OpenDBWithDriver("pgx", cfg.Database.URL)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	default:
		fmt.Printf("unknown command %q\n", command)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("migrate %s failed: %v\n", command, err)
		os.Exit(1)
	}
}
