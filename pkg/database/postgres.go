package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"relay-messenger/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const downSuffix = ".down.sql"

func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.AppMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// ApplyMigrations executes every embedded up migration in file name order.
// Migrations are written with IF NOT EXISTS so reapplying them is harmless.
func ApplyMigrations(db *gorm.DB) error {
	files, err := migrationFiles(migrationsFS, false)
	if err != nil {
		return err
	}
	return execFiles(db, files)
}

// RollbackMigrations executes every embedded down migration in reverse order.
func RollbackMigrations(db *gorm.DB) error {
	files, err := migrationFiles(migrationsFS, true)
	if err != nil {
		return err
	}
	return execFiles(db, files)
}

func execFiles(db *gorm.DB, files []string) error {
	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		log.Printf("Applying migration: %s", path.Base(name))
		if err := db.Exec(string(content)).Error; err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", path.Base(name), err)
		}
	}
	return nil
}

func migrationFiles(fsys fs.FS, down bool) ([]string, error) {
	entries, err := fs.ReadDir(fsys, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".sql" {
			continue
		}
		if strings.HasSuffix(name, downSuffix) != down {
			continue
		}
		files = append(files, path.Join("migrations", name))
	}

	sort.Strings(files)
	if down {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}
	return files, nil
}

// Tables lists the application tables in dependency order.
var Tables = []string{"users", "chats", "chat_participants", "messages", "user_settings", "push_subscriptions"}

type TableStatus struct {
	Name   string
	Exists bool
	Rows   int64
}

// Status reports whether each application table exists and how many rows it holds.
func Status(ctx context.Context, db *gorm.DB) ([]TableStatus, error) {
	out := make([]TableStatus, 0, len(Tables))
	for _, table := range Tables {
		st := TableStatus{Name: table}
		st.Exists = db.WithContext(ctx).Migrator().HasTable(table)
		if st.Exists {
			if err := db.WithContext(ctx).Table(table).Count(&st.Rows).Error; err != nil {
				return nil, fmt.Errorf("count %s: %w", table, err)
			}
		}
		out = append(out, st)
	}
	return out, nil
}
