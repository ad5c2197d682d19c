// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Integration tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/rubms01/ai-restaurant/internal/admin"
	"github.com/rubms01/ai-restaurant/internal/database"
	"github.com/rubms01/ai-restaurant/internal/models"
	"github.com/rubms01/ai-restaurant/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "restaurant")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "restaurant")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "api:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

// fakeObjects is an in-memory ObjectStore.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	f.types[key] = contentType
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	delete(f.types, key)
	return nil
}

func (f *fakeObjects) FileURL(key string) string {
	return "https://cdn.test/" + key
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB      *sql.DB
	Stores  *store.Stores
	Objects *fakeObjects
	Admin   *Admin
	Public  *Public
}

// newTestEnv creates a test environment backed by PostgreSQL. The response
// cache is disabled; cache behavior has its own tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	stores := store.New(db)
	objects := newFakeObjects()

	return &testEnv{
		DB:      db,
		Stores:  stores,
		Objects: objects,
		Admin:   NewAdmin(admin.Default(), stores, objects, nil),
		Public:  NewPublic(stores, objects, nil),
	}
}

// newOfflineAdmin builds an Admin whose stores are never reached, for
// tests that fail before any query runs.
func newOfflineAdmin(objects ObjectStore) *Admin {
	return NewAdmin(admin.Default(), store.New(nil), objects, nil)
}

// withChiURLParams adds chi URL parameters to a request, given as
// alternating key/value pairs.
func withChiURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// jsonRequest builds a request with v encoded as the JSON body.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	var body io.Reader
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody decodes a recorder body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// uniqueName returns a name that will not collide with other test runs.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()[:8]
}

// createRestaurant inserts a restaurant and deletes it when the test ends.
func createRestaurant(t *testing.T, env *testEnv) *models.Restaurant {
	t.Helper()
	r, err := env.Stores.Restaurants.Create(context.Background(), &models.Restaurant{
		Name:    uniqueName("본앤브레드"),
		Address: "서울특별시 성동구 왕십리로 1",
		Phone:   "+8225550000",
	})
	if err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM restaurants WHERE id = $1", r.ID)
	})
	return r
}

// cleanArticles removes test articles by ID.
func cleanArticles(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM articles WHERE id = $1", id)
	}
}
