package repository

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/metrics"
	"github.com/LenaDzi1/TimeManager-sub001/pkg/logger"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLServer = "sqlserver"
	DriverPgx       = "pgx"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Config describes the database target. It is read-only once the Repository is built.
type Config struct {
	Driver                 string        `mapstructure:"driver"`
	Host                   string        `mapstructure:"host"`
	Port                   string        `mapstructure:"port"`
	Instance               string        `mapstructure:"instance"`
	Name                   string        `mapstructure:"name"`
	User                   string        `mapstructure:"user"`
	Password               string        `mapstructure:"password"`
	TrustedConnection      bool          `mapstructure:"trustedConnection"`
	TrustServerCertificate bool          `mapstructure:"trustServerCertificate"`
	Path                   string        `mapstructure:"path"`
	ConnectTimeout         time.Duration `mapstructure:"connectTimeout"`
	CommandTimeout         time.Duration `mapstructure:"commandTimeout"`
	Pooling                bool          `mapstructure:"pooling"`
}

// DSN returns the data source name for the configured driver.
func (c *Config) DSN() (string, error) {
	switch c.Driver {
	case DriverSQLServer:
		return c.sqlServerURL(), nil
	case DriverPgx, DriverPostgres:
		return c.postgresURL(), nil
	case DriverSQLite:
		return c.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	default:
		return "", errors.Wrapf(ErrUnsupportedDriver, "driver %q", c.Driver)
	}
}

// Target is the DSN with credentials removed, safe for logs and errors.
func (c *Config) Target() string {
	switch c.Driver {
	case DriverSQLite:
		return c.Path
	default:
		target := c.Host
		if c.Port != "" {
			target += ":" + c.Port
		}
		if c.Instance != "" {
			target += "\\" + c.Instance
		}
		return target + "/" + c.Name
	}
}

func (c *Config) sqlServerURL() string {
	query := url.Values{}
	query.Add("database", c.Name)
	query.Add("TrustServerCertificate", strconv.FormatBool(c.TrustServerCertificate))
	if c.ConnectTimeout > 0 {
		query.Add("connection timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     c.Host,
		RawQuery: query.Encode(),
	}
	if c.Port != "" {
		u.Host = c.Host + ":" + c.Port
	}
	if c.Instance != "" {
		u.Path = c.Instance
	}
	// Integrated authentication is selected by leaving the credentials out.
	if !c.TrustedConnection && c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

func (c *Config) postgresURL() string {
	query := url.Values{}
	query.Add("sslmode", "disable")
	if c.ConnectTimeout > 0 {
		query.Add("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}

	u := &url.URL{
		Scheme:   "postgres",
		Host:     c.Host,
		Path:     "/" + c.Name,
		RawQuery: query.Encode(),
	}
	if c.Port != "" {
		u.Host = c.Host + ":" + c.Port
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	return u.String()
}

func (c *Config) placeholder() squirrel.PlaceholderFormat {
	switch c.Driver {
	case DriverSQLServer:
		return squirrel.AtP
	case DriverPgx, DriverPostgres:
		return squirrel.Dollar
	default:
		return squirrel.Question
	}
}

// Repository is the single gateway to the database. Every execute call reserves
// its own connection and releases it before returning.
type Repository struct {
	db  *sqlx.DB
	cfg Config
}

// Open connects to the configured target and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*Repository, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Target: cfg.Target(), Err: err}
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Target: cfg.Target(), Err: err}
	}
	if !cfg.Pooling {
		db.SetMaxIdleConns(0)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &ConnectionError{Driver: cfg.Driver, Target: cfg.Target(), Err: err}
	}

	logger.Logger().Debug("connected to database",
		zap.String("driver", cfg.Driver),
		zap.String("target", cfg.Target()))

	return New(db, cfg), nil
}

// New wraps an already opened handle. Pool settings of db are left untouched.
func New(db *sqlx.DB, cfg Config) *Repository {
	return &Repository{db: db, cfg: cfg}
}

func (r *Repository) Close() error {
	logger.Logger().Debug("closing database", zap.String("target", r.cfg.Target()))
	return r.db.Close()
}

// Ping checks that the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	conn, err := r.OpenConnection(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// Stats publishes the pool state to metrics and returns it.
func (r *Repository) Stats() (open, idle, inUse int) {
	s := r.db.Stats()
	metrics.SetDBPoolStats(s.OpenConnections, s.Idle, s.InUse)
	return s.OpenConnections, s.Idle, s.InUse
}

// Conn is one reserved connection. Close releases it and may be called more than once.
type Conn struct {
	*sqlx.Conn
	once sync.Once
	err  error
}

func (c *Conn) Close() error {
	c.once.Do(func() {
		c.err = c.Conn.Close()
		metrics.ConnectionReleased()
	})
	return c.err
}

// GetConnection reserves a connection without checking that it is alive.
func (r *Repository) GetConnection(ctx context.Context) (*Conn, error) {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		metrics.ConnectionFailed()
		return nil, &ConnectionError{Driver: r.cfg.Driver, Target: r.cfg.Target(), Err: err}
	}
	metrics.ConnectionOpened()
	return &Conn{Conn: conn}, nil
}

// OpenConnection reserves a connection and pings it. The caller must Close it.
func (r *Repository) OpenConnection(ctx context.Context) (*Conn, error) {
	conn, err := r.GetConnection(ctx)
	if err != nil {
		return nil, err
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, &ConnectionError{Driver: r.cfg.Driver, Target: r.cfg.Target(), Err: err}
	}
	return conn, nil
}

// Transaction runs t in one transaction bounded by CommandTimeout. Statements in t
// must use the ctx they are handed.
func (r *Repository) Transaction(ctx context.Context, t func(ctx context.Context, tx *sqlx.Tx) error) error {
	if r.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.CommandTimeout)
		defer cancel()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return &ConnectionError{Driver: r.cfg.Driver, Target: r.cfg.Target(), Err: err}
	}
	err = t(ctx, tx)
	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil {
			return errors.Wrapf(err, "rollback error: %v", txErr)
		}
		return err
	}
	return tx.Commit()
}

func (r *Repository) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(r.cfg.placeholder())
}

// returningID is appended to an INSERT so that it yields the new identity.
func (r *Repository) returningID() string {
	if strings.EqualFold(r.cfg.Driver, DriverSQLServer) {
		return "; SELECT CAST(SCOPE_IDENTITY() AS BIGINT)"
	}
	return "RETURNING Id"
}
