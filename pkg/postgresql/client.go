package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Client is the PostgreSQL client.
type Client struct {
	pool   *pgxpool.Pool
	config Config
}

// Config is the PostgreSQL client configuration. When URL is set (DATABASE_URL with
// the usual prefix) it takes precedence over the discrete connection fields.
type Config struct {
	URL      string `env:"URL"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	Database string `env:"DATABASE" envDefault:"paper_trading"`
	Username string `env:"USERNAME" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:""`
	SSLMode  string `env:"SSL_MODE" envDefault:"prefer"`

	// Pool settings. The engines are single writers so the pool stays small.
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime time.Duration `env:"MAX_CONN_IDLE_TIME" envDefault:"15m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`

	ApplicationName string `env:"APPLICATION_NAME" envDefault:"paper-trading"`
	SearchPath      string `env:"SEARCH_PATH" envDefault:"public"`

	Retry RetryConfig `envPrefix:"RETRY_"`
}

var _ PostgreSQLClient = (*Client)(nil)

// NewClient creates the connection pool and verifies it with a ping.
func NewClient(ctx context.Context, config Config) (PostgreSQLClient, error) {
	pgxConfig, err := pgxpool.ParseConfig(config.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgresql config: %w", err)
	}

	pgxConfig.MaxConns = config.MaxConns
	pgxConfig.MinConns = config.MinConns
	pgxConfig.MaxConnLifetime = config.MaxConnLifetime
	pgxConfig.MaxConnIdleTime = config.MaxConnIdleTime
	pgxConfig.ConnConfig.ConnectTimeout = config.ConnectTimeout
	pgxConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	if config.ApplicationName != "" {
		pgxConfig.ConnConfig.RuntimeParams["application_name"] = config.ApplicationName
	}
	if config.SearchPath != "" {
		pgxConfig.ConnConfig.RuntimeParams["search_path"] = config.SearchPath
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgresql pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgresql: %w", err)
	}

	return &Client{
		pool:   pool,
		config: config,
	}, nil
}

// ConnString returns URL when set, otherwise a url built from the discrete fields.
func (c Config) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// Pool returns the connection pool.
func (c *Client) Pool() *pgxpool.Pool {
	return c.pool
}

// Stats returns connection pool statistics for monitoring.
func (c *Client) Stats() *pgxpool.Stat {
	return c.pool.Stat()
}

// DatabaseName returns the database the pool is connected to.
func (c *Client) DatabaseName() string {
	return c.pool.Config().ConnConfig.Database
}

// Close closes the connection pool.
func (c *Client) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Ping pings the connection pool.
func (c *Client) Ping(ctx context.Context) error {
	return c.pool.Ping(ctx)
}

// Exec executes a query without returning any rows. It joins the transaction
// carried by ctx, if any.
func (c *Client) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx, ok := GetTx(ctx); ok {
		return tx.Exec(ctx, sql, args...)
	}
	return c.pool.Exec(ctx, sql, args...)
}

// Query executes a query that returns rows.
func (c *Client) Query(ctx context.Context, sql string, args ...any) (RowsInterface, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if tx, ok := GetTx(ctx); ok {
		rows, err = tx.Query(ctx, sql, args...)
	} else {
		rows, err = c.pool.Query(ctx, sql, args...)
	}
	if err != nil {
		return nil, err
	}
	return NewRowsWrapper(rows), nil
}

// QueryRow executes a query that is expected to return at most one row
func (c *Client) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx, ok := GetTx(ctx); ok {
		return tx.QueryRow(ctx, sql, args...)
	}
	return c.pool.QueryRow(ctx, sql, args...)
}

// Begin starts a transaction
func (c *Client) Begin(ctx context.Context) (pgx.Tx, error) {
	return c.pool.Begin(ctx)
}

// BeginTx starts a transaction with specific options
func (c *Client) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return c.pool.BeginTx(ctx, txOptions)
}

// SendBatch queues several statements in one round trip.
func (c *Client) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	if tx, ok := GetTx(ctx); ok {
		return tx.SendBatch(ctx, b)
	}
	return c.pool.SendBatch(ctx, b)
}
