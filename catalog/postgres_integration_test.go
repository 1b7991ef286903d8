//go:build integration
// +build integration

package catalog_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kisansetu/schemematch/catalog"

	_ "github.com/lib/pq"
)

// setupTestDB creates a PostgreSQL container and returns a connection
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "schemematch_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(60 * time.Second),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgresContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	connStr := fmt.Sprintf("host=%s port=%s user=test password=test dbname=schemematch_test sslmode=disable", host, port.Port())

	// Wait for connection to be available
	var db *sql.DB
	for i := 0; i < 30; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	migrationSQL, err := os.ReadFile(filepath.Join("..", "migrations", "000001_catalog_schema.up.sql"))
	if err != nil {
		migrationSQL, err = os.ReadFile(filepath.Join("migrations", "000001_catalog_schema.up.sql"))
		if err != nil {
			t.Fatalf("Failed to read migration file: %v", err)
		}
	}

	_, err = db.Exec(string(migrationSQL))
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	cleanup := func() {
		db.Close()
		postgresContainer.Terminate(ctx)
	}

	return db, cleanup
}

const integrationScheme = `{
	"scheme_id": "pm-kisan",
	"name": "PM-KISAN Income Support",
	"is_active": true,
	"priority_weight": 5.0,
	"eligibility_rules": [
		{
			"description": "Must own cultivable land",
			"severity": "mandatory",
			"condition": {"op": "eq", "field": "farmer_type", "value": "owner"}
		}
	],
	"benefit_spec": {"type": "fixed", "amount": 6000}
}`

func TestPostgresStore_FetchEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := catalog.NewPostgresStore(db)
	data, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() on empty database failed: %v", err)
	}

	snap, err := catalog.ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}
	if snap.Version != "unversioned" {
		t.Errorf("Version = %q, want unversioned", snap.Version)
	}
	if len(snap.Schemes) != 0 {
		t.Errorf("loaded %d schemes from an empty database", len(snap.Schemes))
	}
}

func TestPostgresStore_UpsertAndFetch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := catalog.NewPostgresStore(db)

	if err := store.Upsert(ctx, "pm-kisan", []byte(integrationScheme)); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := store.SetVersion(ctx, "2025-08-01"); err != nil {
		t.Fatalf("SetVersion() failed: %v", err)
	}

	data, err := store.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	snap, err := catalog.ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}
	if snap.Version != "2025-08-01" {
		t.Errorf("Version = %q, want 2025-08-01", snap.Version)
	}
	if len(snap.Schemes) != 1 || snap.Schemes[0].ID != "pm-kisan" {
		t.Fatalf("unexpected schemes: %+v", snap.Schemes)
	}
	if snap.Schemes[0].Benefit.Amount != 6000 {
		t.Errorf("benefit amount = %v, want 6000", snap.Schemes[0].Benefit.Amount)
	}
}

func TestPostgresStore_UpsertReplaces(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := catalog.NewPostgresStore(db)

	if err := store.Upsert(ctx, "pm-kisan", []byte(integrationScheme)); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}

	updated := `{"scheme_id": "pm-kisan", "name": "Updated Name", "is_active": true,
		"priority_weight": 5.0, "eligibility_rules": [], "benefit_spec": {"type": "fixed", "amount": 8000}}`
	if err := store.Upsert(ctx, "pm-kisan", []byte(updated)); err != nil {
		t.Fatalf("second Upsert() failed: %v", err)
	}

	data, err := store.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	snap, err := catalog.ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}
	if len(snap.Schemes) != 1 {
		t.Fatalf("loaded %d schemes, want 1 after replace", len(snap.Schemes))
	}
	if snap.Schemes[0].Name != "Updated Name" {
		t.Errorf("Name = %q, want the replaced definition", snap.Schemes[0].Name)
	}
}

func TestPostgresStore_UpsertRejectsInvalidJSON(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := catalog.NewPostgresStore(db)
	if err := store.Upsert(context.Background(), "bad", []byte("{not json")); err == nil {
		t.Fatal("Upsert() accepted invalid JSON")
	}
}

func TestManagerReloadFromPostgres(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := catalog.NewPostgresStore(db)
	if err := store.Upsert(ctx, "pm-kisan", []byte(integrationScheme)); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	if err := store.SetVersion(ctx, "v1"); err != nil {
		t.Fatalf("SetVersion() failed: %v", err)
	}

	m := catalog.NewManager(store)
	snap, err := m.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload() failed: %v", err)
	}
	if snap.Version != "v1" || len(snap.Schemes) != 1 {
		t.Fatalf("snapshot = %q/%d, want v1/1", snap.Version, len(snap.Schemes))
	}

	// A second scheme appears after the next reload.
	second := `{"scheme_id": "soil-health-card", "name": "Soil Health Card Scheme", "is_active": true,
		"priority_weight": 1.0, "eligibility_rules": [], "benefit_spec": {"type": "fixed", "amount": 0}}`
	if err := store.Upsert(ctx, "soil-health-card", []byte(second)); err != nil {
		t.Fatalf("Upsert() failed: %v", err)
	}
	snap, err = m.Reload(ctx)
	if err != nil {
		t.Fatalf("second Reload() failed: %v", err)
	}
	if len(snap.Schemes) != 2 {
		t.Errorf("loaded %d schemes after second reload, want 2", len(snap.Schemes))
	}
}
