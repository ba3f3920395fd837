package integration

import (
	"context"
	"testing"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and the catalogue schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 5 * time.Minute,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPoolFromURL(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if _, err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// testCatalog is the fixture imported by SeedCatalog.
var testCatalog = &seed.Catalog{Rows: []seed.Row{
	{Category: "Tools", Name: "Hammer", Description: "Claw hammer", Stock: 4, Price: 24.5},
	{Category: "Widgets", Name: "Widget", Description: "A widget", Stock: 10, Price: 9.99},
	{Category: "Tools", Name: "Wrench", Description: "Adjustable", Stock: 12, Price: 15.75},
	{Category: "Widgets", Name: "Sprocket", Description: "Twelve teeth", Stock: 100, Price: 1.2},
	{Category: "Garden", Name: "Rake", Description: "", Stock: 0, Price: 12},
}}

// SeedCatalog imports testCatalog and returns category IDs by name.
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) map[string]int {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	categoryRepo := repository.NewCategoryRepository(pool, logger)
	importer := seed.NewImporter(categoryRepo, repository.NewProductRepository(pool, logger), logger)

	if _, err := importer.Import(ctx, testCatalog); err != nil {
		t.Fatalf("failed to seed catalogue: %v", err)
	}

	categories, err := categoryRepo.FindAll(ctx)
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}

	ids := make(map[string]int, len(categories))
	for _, c := range categories {
		ids[c.Name] = c.ID
	}
	return ids
}

// CleanupDB removes all catalogue rows and resets the identity sequences.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE products, categories RESTART IDENTITY")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}
