package migrationpg

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
)

// Migration is one versioned schema change read from a pair of
// <id>.up.sql / <id>.down.sql files.
type Migration struct {
	ID      string
	Name    string
	UpSQL   string
	DownSQL string
}

// Status is a migration together with whether it has been applied.
type Status struct {
	Migration
	Applied bool
}

// Runner applies migrations from a file system to PostgreSQL.
type Runner struct {
	client    postgresql.PostgreSQLClient
	logger    logger.Interface
	files     fs.FS
	dir       string
	schema    string
	tableName string
}

// Config for migration runner
type Config struct {
	Dir       string // directory inside the file system, "." for the root
	Schema    string // default: "public"
	TableName string // default: "schema_migrations"
}

// NewRunner creates a runner reading migrations from files.
func NewRunner(client postgresql.PostgreSQLClient, log logger.Interface, files fs.FS, config Config) *Runner {
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.TableName == "" {
		config.TableName = "schema_migrations"
	}
	if config.Dir == "" {
		config.Dir = "."
	}

	return &Runner{
		client:    client,
		logger:    log,
		files:     files,
		dir:       config.Dir,
		schema:    config.Schema,
		tableName: config.TableName,
	}
}

func (r *Runner) table() string {
	return r.schema + "." + r.tableName
}

// EnsureMigrationTable creates the bookkeeping table if it doesn't exist
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	_, err := r.client.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, r.table()))
	if err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// GetAppliedMigrations returns the set of applied migration ids
func (r *Runner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := r.client.Query(ctx, fmt.Sprintf("SELECT id FROM %s ORDER BY id", r.table()))
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.TracerFromError(err)
		}
		applied[id] = true
	}
	return applied, rows.Err()
}

// LoadMigrations reads every migration in id order. A missing down file leaves
// DownSQL empty.
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := fs.Glob(r.files, path.Join(r.dir, "*.up.sql"))
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		up, err := fs.ReadFile(r.files, upFile)
		if err != nil {
			return nil, errors.NewTracer("failed to read " + upFile).Wrap(err)
		}

		id := strings.TrimSuffix(path.Base(upFile), ".up.sql")
		name := id
		if parts := strings.SplitN(id, "_", 2); len(parts) == 2 {
			name = parts[1]
		}

		var down []byte
		if b, err := fs.ReadFile(r.files, strings.TrimSuffix(upFile, ".up.sql")+".down.sql"); err == nil {
			down = b
		}

		migrations = append(migrations, Migration{
			ID:      id,
			Name:    name,
			UpSQL:   strings.TrimSpace(string(up)),
			DownSQL: strings.TrimSpace(string(down)),
		})
	}
	return migrations, nil
}

// Status lists every known migration and whether it is applied.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return nil, err
	}
	migrations, err := r.LoadMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(migrations))
	for _, m := range migrations {
		out = append(out, Status{Migration: m, Applied: applied[m.ID]})
	}
	return out, nil
}

// MigrateUp applies up to steps pending migrations, all of them when steps <= 0.
// Each migration runs in its own transaction together with its bookkeeping row.
func (r *Runner) MigrateUp(ctx context.Context, steps int) (int, error) {
	status, err := r.Status(ctx)
	if err != nil {
		return 0, err
	}

	var toApply []Migration
	for _, s := range status {
		if !s.Applied {
			toApply = append(toApply, s.Migration)
		}
	}
	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	for i, migration := range toApply {
		err := postgresql.WithTx(ctx, r.client, func(txCtx context.Context) error {
			if _, err := r.client.Exec(txCtx, migration.UpSQL); err != nil {
				return err
			}
			_, err := r.client.Exec(txCtx,
				fmt.Sprintf("INSERT INTO %s (id, name, applied_at) VALUES ($1, $2, NOW())", r.table()),
				migration.ID, migration.Name)
			return err
		})
		if err != nil {
			return i, errors.NewTracer("failed to apply migration " + migration.ID).Wrap(err)
		}

		r.logger.InfoContext(ctx, "Applied migration", logger.Field{Key: "migration", Value: migration.ID})
	}

	return len(toApply), nil
}

// MigrateDown reverts the last steps applied migrations.
func (r *Runner) MigrateDown(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		return 0, errors.NewErrorDetails("steps must be greater than 0 for down migrations", string(errors.GeneralBadRequestError), "steps")
	}

	status, err := r.Status(ctx)
	if err != nil {
		return 0, err
	}

	var toRevert []Migration
	for i := len(status) - 1; i >= 0 && len(toRevert) < steps; i-- {
		if status[i].Applied {
			toRevert = append(toRevert, status[i].Migration)
		}
	}

	for i, migration := range toRevert {
		if migration.DownSQL == "" {
			return i, errors.NewErrorDetails("no down migration for "+migration.ID, string(errors.GeneralBadRequestError), "down")
		}

		err := postgresql.WithTx(ctx, r.client, func(txCtx context.Context) error {
			if _, err := r.client.Exec(txCtx, migration.DownSQL); err != nil {
				return err
			}
			_, err := r.client.Exec(txCtx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table()), migration.ID)
			return err
		})
		if err != nil {
			return i, errors.NewTracer("failed to revert migration " + migration.ID).Wrap(err)
		}

		r.logger.InfoContext(ctx, "Reverted migration", logger.Field{Key: "migration", Value: migration.ID})
	}

	return len(toRevert), nil
}
