// store_test.go provides shared database helpers and fixtures for the store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rubms01/ai-restaurant/internal/database"
	"github.com/rubms01/ai-restaurant/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "restaurant")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "restaurant")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// createRestaurant inserts a restaurant named name and deletes it when the
// test ends.
func createRestaurant(t *testing.T, db *sql.DB, name string, branch *string) *models.Restaurant {
	t.Helper()
	ctx := context.Background()

	r, err := NewRestaurantStore(db).Create(ctx, &models.Restaurant{
		Name:       name,
		BranchName: branch,
		Address:    "서울특별시 강남구 테헤란로 1",
		Phone:      "+8225550000",
	})
	if err != nil {
		t.Fatalf("create restaurant %q: %v", name, err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM restaurants WHERE id = $1", r.ID)
	})
	return r
}

// uniqueName returns a name that will not collide with other test runs.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func strPtr(s string) *string { return &s }
