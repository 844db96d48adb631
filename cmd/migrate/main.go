package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"relay-messenger/config"
	"relay-messenger/pkg/database"

	"gorm.io/gorm"
)

const usage = `
Relay Messenger - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Apply the embedded SQL migrations
  down        Roll back the embedded SQL migrations
  status      Show database connection and table status
  seed-dev    Seed with development/test data
  reset       Roll back and re-apply all migrations (DANGEROUS)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go seed-dev
  go run cmd/migrate/main.go reset
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		runMigrationsUp(db)
	case "down":
		runMigrationsDown(db)
	case "status":
		showStatus(db)
	case "seed-dev":
		runSeedDevelopment(db)
	case "reset":
		runReset(db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("🚀 Running migrations UP...")

	if err := database.ApplyMigrations(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func runMigrationsDown(db *gorm.DB) {
	log.Println("⬇️  Rolling back migrations...")

	if err := database.RollbackMigrations(db); err != nil {
		log.Fatalf("❌ Rollback failed: %v", err)
	}

	log.Println("✅ Rollback completed successfully!")
}

func showStatus(db *gorm.DB) {
	log.Println("🔍 Checking database status...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, db); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	tables, err := database.Status(ctx, db)
	if err != nil {
		log.Fatalf("❌ Status check failed: %v", err)
	}
	for _, table := range tables {
		if table.Exists {
			log.Printf("✅ Table %-20s exists (%d rows)", table.Name, table.Rows)
		} else {
			log.Printf("❌ Table %-20s does not exist", table.Name)
		}
	}
}

func runSeedDevelopment(db *gorm.DB) {
	log.Println("🌱 Seeding database (development mode)...")

	result, err := database.SeedDevelopment(db, nil)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("📊 Seed Summary:")
	log.Printf("   - Users: %d", len(result.Users))
	log.Printf("   - Chats: %d", len(result.Chats))
	log.Printf("   - Messages: %d", len(result.Messages))
	log.Println("✅ Development seeding completed!")
}

func runReset(db *gorm.DB) {
	log.Println("⚠️  WARNING: This will DROP all tables and re-run migrations!")

	log.Println("🗑️  Rolling back migrations...")
	if err := database.RollbackMigrations(db); err != nil {
		log.Fatalf("❌ Rollback failed: %v", err)
	}

	log.Println("🚀 Running migrations...")
	if err := database.ApplyMigrations(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Database reset completed!")
}
