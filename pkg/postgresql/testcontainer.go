package postgresql

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestContainer wraps a disposable PostgreSQL container and a client connected to it.
type TestContainer struct {
	Container testcontainers.Container
	Client    PostgreSQLClient
	ConnStr   string
	ctx       context.Context
}

// TestContainerConfig holds configuration for the test container
type TestContainerConfig struct {
	Image          string
	Database       string
	Username       string
	Password       string
	MigrationsPath string
	StartupTimeout time.Duration
}

// DefaultTestContainerConfig returns a default configuration
func DefaultTestContainerConfig() *TestContainerConfig {
	return &TestContainerConfig{
		Image:          "postgres:16-alpine",
		Database:       "paper_trading_test",
		Username:       "test_user",
		Password:       "test_pass",
		StartupTimeout: 2 * time.Minute,
	}
}

// NewTestContainer starts a container and applies every *.up.sql file in
// MigrationsPath in lexical order.
func NewTestContainer(ctx context.Context, config *TestContainerConfig) (*TestContainer, error) {
	if config == nil {
		config = DefaultTestContainerConfig()
	}

	container, err := postgres.Run(ctx, config.Image,
		postgres.WithDatabase(config.Database),
		postgres.WithUsername(config.Username),
		postgres.WithPassword(config.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(config.StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	tc := &TestContainer{
		Container: container,
		Client:    &Client{pool: pool, config: Config{URL: connStr}},
		ConnStr:   connStr,
		ctx:       ctx,
	}

	if config.MigrationsPath != "" {
		if err := tc.RunMigrations(config.MigrationsPath); err != nil {
			_ = tc.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return tc, nil
}

// Close closes the connection and terminates the container
func (tc *TestContainer) Close() error {
	if tc.Client != nil {
		tc.Client.Close()
	}
	if tc.Container != nil {
		return tc.Container.Terminate(tc.ctx)
	}
	return nil
}

// RunMigrations applies the up files found in dir.
func (tc *TestContainer) RunMigrations(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		// no arguments: pgx sends it over the simple protocol, so multi statement files work
		if _, err := tc.Client.Exec(tc.ctx, string(content)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

// TruncateAllTables empties every table in the public schema.
func (tc *TestContainer) TruncateAllTables() error {
	rows, err := tc.Client.Query(tc.ctx, `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`)
	if err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, table := range tables {
		if _, err := tc.Client.Exec(tc.ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}
