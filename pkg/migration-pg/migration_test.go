package migrationpg

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/muhammadchandra19/paper-trading/pkg/errors"
	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	mockPg "github.com/muhammadchandra19/paper-trading/pkg/postgresql/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var files = fstest.MapFS{
	"migrations/000001_market_ticks.up.sql":   {Data: []byte("CREATE TABLE market_ticks (id BIGSERIAL);\n")},
	"migrations/000001_market_ticks.down.sql": {Data: []byte("DROP TABLE market_ticks;")},
	"migrations/000002_signals.up.sql":        {Data: []byte("CREATE TABLE signals (id UUID);")},
	"migrations/README.md":                    {Data: []byte("ignored")},
}

func TestRunner_LoadMigrations(t *testing.T) {
	r := NewRunner(nil, logger.NewNop(), files, Config{Dir: "migrations"})

	migrations, err := r.LoadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "000001_market_ticks", migrations[0].ID)
	assert.Equal(t, "market_ticks", migrations[0].Name)
	assert.Equal(t, "CREATE TABLE market_ticks (id BIGSERIAL);", migrations[0].UpSQL)
	assert.Equal(t, "DROP TABLE market_ticks;", migrations[0].DownSQL)
	assert.Empty(t, migrations[1].DownSQL)
}

func TestRunner_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	pg := mockPg.NewMockPostgreSQLClient(ctrl)
	rows := mockPg.NewMockRowsInterface(ctrl)

	pg.EXPECT().Exec(ctx, gomock.Any()).Return(pgconn.CommandTag{}, nil)
	pg.EXPECT().Query(ctx, "SELECT id FROM public.schema_migrations ORDER BY id").Return(rows, nil)
	gomock.InOrder(
		rows.EXPECT().Next().Return(true),
		rows.EXPECT().Scan(gomock.Any()).DoAndReturn(func(dest ...any) error {
			*dest[0].(*string) = "000001_market_ticks"
			return nil
		}),
		rows.EXPECT().Next().Return(false),
	)
	rows.EXPECT().Err().Return(nil)
	rows.EXPECT().Close()

	r := NewRunner(pg, logger.NewNop(), files, Config{Dir: "migrations"})
	status, err := r.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.True(t, status[0].Applied)
	assert.False(t, status[1].Applied)
}

func TestRunner_MigrateDownRequiresSteps(t *testing.T) {
	r := NewRunner(nil, logger.NewNop(), files, Config{Dir: "migrations"})
	_, err := r.MigrateDown(context.Background(), 0)
	assert.True(t, errors.ErrorCodeEquals(err, string(errors.GeneralBadRequestError)))
}
