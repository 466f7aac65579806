// Command migrate applies the database schema via goose. Usage:
//
//	migrate up     apply all pending migrations
//	migrate down   roll back the most recent migration
//	migrate status print the migration state
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/anprojects/anproyektim/migrations"
	"github.com/anprojects/anproyektim/pkg/configuration"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate <up|down|status>")
		os.Exit(2)
	}
	command := os.Args[1]

	conf := configuration.Use()
	defer conf.Unload()

	db, err := sql.Open("pgx", conf.Database.Opts)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %v", err)
	}

	switch command {
	case "up":
		err = goose.Up(db, "projects")
	case "down":
		err = goose.Down(db, "projects")
	case "status":
		err = goose.Status(db, "projects")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", command)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("migrate %s failed: %v", command, err)
	}
}
