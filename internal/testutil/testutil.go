package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dicapisar/taskboard/internal/api"
	"github.com/dicapisar/taskboard/internal/config"
	"github.com/dicapisar/taskboard/internal/domain"
	"github.com/dicapisar/taskboard/internal/repository"
	repoPostgres "github.com/dicapisar/taskboard/internal/repository/postgres"
	"github.com/dicapisar/taskboard/internal/repository/rediscache"
	"github.com/dicapisar/taskboard/internal/service"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_taskboard"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.Role{},
		&domain.User{},
		&domain.Task{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	seedRoles(t, db)

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation. Roles are reseeded
// because users reference them.
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"tasks",
		"users",
		"roles",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}

	seedRoles(t, tdb.DB)
}

func seedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()

	roles := []domain.Role{
		{ID: domain.AdminRoleID, Name: "admin", Description: "System administrator"},
		{ID: domain.StudentRoleID, Name: "student", Description: "Student"},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}
}

// TestCache manages a testcontainers Redis instance
type TestCache struct {
	Container testcontainers.Container
	Client    *goredis.Client
	Repo      repository.CacheRepository
}

// NewTestCache starts a Redis testcontainer and wraps it in the cache
// repository with the given session TTL.
func NewTestCache(t *testing.T, sessionTTL time.Duration) *TestCache {
	t.Helper()

	ctx := context.Background()

	container, err := tcRedis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	opts, err := goredis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed to parse redis url: %v", err)
	}

	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to ping redis: %v", err)
	}

	tc := &TestCache{
		Container: container,
		Client:    client,
		Repo:      rediscache.NewCacheRepository(client, sessionTTL),
	}

	t.Cleanup(func() {
		tc.Cleanup()
	})

	return tc
}

// Cleanup terminates the container
func (tc *TestCache) Cleanup() {
	if tc.Client != nil {
		tc.Client.Close()
	}
	if tc.Container != nil {
		ctx := context.Background()
		tc.Container.Terminate(ctx)
	}
}

// Flush clears all cache keys for test isolation
func (tc *TestCache) Flush(t *testing.T) {
	t.Helper()

	if err := tc.Client.FlushAll(context.Background()).Err(); err != nil {
		t.Fatalf("failed to flush redis: %v", err)
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0", // Random port
		Environment:     "test",
		CacheExpiration: time.Hour,
		UserListTTL:     60 * time.Second,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Cache    *TestCache
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := TestConfig()
	testDB := NewTestDB(t)
	testCache := NewTestCache(t, cfg.CacheExpiration)

	repos := repoPostgres.NewRepositories(testDB.DB, testCache.Repo)
	services := service.NewServices(repos, cfg)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Cache:    testCache,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/api/v1%s", ts.Server.URL, path)
}
