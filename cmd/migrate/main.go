package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

func main() {
	dir := flag.String("dir", "migrations", "Directory containing migration files")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	files, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	var migrationFiles []string
	for _, file := range files {
		if filepath.Ext(file.Name()) == ".sql" {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}
	sort.Strings(migrationFiles)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.Fatalf("failed to create migrations table: %v", err)
	}

	for _, name := range migrationFiles {
		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM migrations WHERE name = $1", name).Scan(&count); err != nil {
			log.Fatalf("failed to check migration status: %v", err)
		}
		if count > 0 {
			fmt.Printf("Skipping %s (already applied)\n", name)
			continue
		}

		content, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			log.Fatalf("failed to read migration %s: %v", name, err)
		}

		if strings.TrimSpace(string(content)) == "" {
			continue
		}

		if _, err := db.Exec(string(content)); err != nil {
			log.Fatalf("failed to apply migration %s: %v", name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (name) VALUES ($1)", name); err != nil {
			log.Fatalf("failed to record migration %s: %v", name, err)
		}

		fmt.Printf("Applied %s\n", name)
	}
}
