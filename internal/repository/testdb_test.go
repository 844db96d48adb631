package repository_test

import (
	"context"
	"os"
	"testing"

	"relay-messenger/config"
	"relay-messenger/internal/domain/user"
	"relay-messenger/internal/repository"
	"relay-messenger/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDatabaseEnv names the DSN of a disposable Postgres database. The
// tests in this package truncate every table they touch.
const testDatabaseEnv = "TEST_DATABASE_URL"

// testDatabaseLock must match the key used by pkg/database tests.
const testDatabaseLock = 7_342_001

// openTestDB connects to the test database, applies the migrations and
// empties the tables. Tests are skipped when no database is configured.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping Postgres repository test", testDatabaseEnv)
	}

	db, err := database.Connect(&config.Config{
		DatabaseURL:    dsn,
		AppMode:        "test",
		DBMaxOpenConns: 10,
		DBMaxIdleConns: 2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	// Serializes against the other packages that reset the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	conn, err := sqlDB.Conn(context.Background())
	require.NoError(t, err)
	_, err = conn.ExecContext(context.Background(), "SELECT pg_advisory_lock($1)", testDatabaseLock)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", testDatabaseLock)
		_ = conn.Close()
	})

	require.NoError(t, database.ApplyMigrations(db))
	require.NoError(t, db.Exec(
		"TRUNCATE users, chats, chat_participants, messages, user_settings RESTART IDENTITY CASCADE",
	).Error)
	return db
}

func createUser(t *testing.T, users repository.UserRepository, phone, name string) user.User {
	t.Helper()
	u := user.User{Phone: phone, Name: name}
	require.NoError(t, users.Create(context.Background(), &u))
	require.NotZero(t, u.ID)
	return u
}

func strPtr(s string) *string {
	return &s
}
