// Package dbtest connects repository tests to a real PostgreSQL database.
// Tests using it are skipped unless TEST_DB_DSN is set.
package dbtest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Pool returns a pool on TEST_DB_DSN with the schema migrated to the latest
// version. The pool is closed when the test ends.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	root := repoRoot()
	_ = godotenv.Load(filepath.Join(root, ".env"))

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	migrateOnce.Do(func() {
		migrateErr = migrateUp(filepath.Join(root, "migrations"), dsn)
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(pool.Close)
	return pool
}

// CreateProfile inserts a profile with a unique subject and returns its id.
func CreateProfile(t *testing.T, pool *pgxpool.Pool, name string, isTrainer bool) string {
	t.Helper()

	var id string
	err := pool.QueryRow(context.Background(),
		`INSERT INTO public.profiles (external_id, name, email, is_trainer)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		"user_"+uuid.NewString(), name, uuid.NewString()+"@example.com", isTrainer,
	).Scan(&id)
	require.NoError(t, err, "failed to create test profile")
	return id
}

func migrateUp(dir, dsn string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func repoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..")
}
