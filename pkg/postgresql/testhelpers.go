package postgresql

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelper provides common testing utilities
type TestHelper struct {
	Container *TestContainer
	T         *testing.T
}

// NewTestHelperWithConfig starts a container for t. Integration tests are skipped
// with -short.
func NewTestHelperWithConfig(t *testing.T, config *TestContainerConfig) *TestHelper {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	container, err := NewTestContainer(context.Background(), config)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Close(); err != nil {
			t.Logf("Failed to close test container: %v", err)
		}
	})

	return &TestHelper{
		Container: container,
		T:         t,
	}
}

// NewTestHelperWithMigrations creates a test helper and runs migrations from the specified path
func NewTestHelperWithMigrations(t *testing.T, migrationsPath string) *TestHelper {
	config := DefaultTestContainerConfig()
	config.MigrationsPath = migrationsPath
	return NewTestHelperWithConfig(t, config)
}

// CleanupTables truncates all tables between tests
func (h *TestHelper) CleanupTables() {
	require.NoError(h.T, h.Container.TruncateAllTables())
}

// ExecuteSQL runs a fixture statement.
func (h *TestHelper) ExecuteSQL(sql string, args ...any) {
	_, err := h.Container.Client.Exec(context.Background(), sql, args...)
	require.NoError(h.T, err)
}

// GetClient returns the client connected to the container.
func (h *TestHelper) GetClient() PostgreSQLClient {
	return h.Container.Client
}
