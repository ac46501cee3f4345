package signal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/muhammadchandra19/paper-trading/pkg/logger"
	"github.com/muhammadchandra19/paper-trading/pkg/postgresql"
	marketv1 "github.com/muhammadchandra19/paper-trading/services/strategy-engine/internal/domain/market/v1"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	helper *postgresql.TestHelper
	repo   SignalRepository
	ctx    context.Context
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../../../../db/migrations")
	require.NoError(suite.T(), err)

	suite.helper = postgresql.NewTestHelperWithMigrations(suite.T(), migrationsPath)
	suite.repo = NewRepository(suite.helper.GetClient(), logger.NewNop())
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.helper.CleanupTables()
}

func (suite *RepositoryTestSuite) TestInsertIsIdempotent() {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	signals := []marketv1.Signal{
		marketv1.NewSignal("momentum", "BTC-USD", marketv1.SideBuy, 1, 100, "up", ts),
		marketv1.NewSignal("momentum", "ETH-USD", marketv1.SideSell, 1, 10, "down", ts),
	}

	inserted, err := suite.repo.Insert(suite.ctx, signals)
	suite.Require().NoError(err)
	suite.Len(inserted, 2)

	inserted, err = suite.repo.Insert(suite.ctx, signals)
	suite.Require().NoError(err)
	suite.Empty(inserted)

	var pending int
	err = suite.helper.GetClient().QueryRow(suite.ctx, `SELECT COUNT(*) FROM signals WHERE status = 'PENDING'`).Scan(&pending)
	suite.Require().NoError(err)
	suite.Equal(2, pending)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
