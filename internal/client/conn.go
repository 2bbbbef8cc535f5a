package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
	"github.com/johnroshan2255/universal-db-mcp/internal/dialect"
	"github.com/johnroshan2255/universal-db-mcp/internal/logger"
)

const connectTimeout = 10 * time.Second

// Conn is one live session to a database backend, owned for the duration of
// a single tool invocation: opened by the dispatcher, used for one query,
// then closed unconditionally on every exit path.
type Conn struct {
	ID       string
	Dialect  dialect.Dialect
	Database string

	db     *sql.DB
	closed bool
}

// Open resolves the configuration into one live connection. A full URL takes
// precedence over discrete fields; the dialect's default port applies only
// when no explicit port is given. Malformed configuration fails before any
// connection attempt, and driver errors propagate without retry.
func Open(ctx context.Context, cfg *config.Config) (*Conn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, dsn, dbName, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name(), err)
	}

	// One invocation owns exactly one driver session.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", d.Name(), err)
	}

	conn := &Conn{
		ID:       uuid.New().String(),
		Dialect:  d,
		Database: dbName,
		db:       db,
	}
	logger.Debug("connection opened", map[string]interface{}{"id": conn.ID, "type": d.Name(), "database": dbName})
	return conn, nil
}

// resolveDSN picks the dialect, connection string, and active database name
// for a configuration. A URL takes precedence and the discrete fields are
// then ignored entirely, including for the introspection database name.
func resolveDSN(cfg *config.Config) (dialect.Dialect, string, string, error) {
	d, err := dialect.ForType(cfg.Type)
	if err != nil {
		return nil, "", "", err
	}

	if cfg.URL != "" {
		dsn, err := d.DSNFromURL(cfg.URL)
		if err != nil {
			return nil, "", "", err
		}
		return d, dsn, d.DatabaseName(dsn), nil
	}

	return d, d.DSN(cfg), cfg.Database, nil
}

// NewConn wraps an already-open *sql.DB. Open is the normal path; this exists
// for injecting driver doubles.
func NewConn(db *sql.DB, d dialect.Dialect, database string) *Conn {
	return &Conn{ID: uuid.New().String(), Dialect: d, Database: database, db: db}
}

// Query forwards parameters positionally and normalizes the result to an
// ordered slice of column-to-value maps regardless of backend. []byte values
// become strings so results serialize as JSON text rather than base64.
func (c *Conn) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns error: %v", err)
	}

	results := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan error: %v", err)
		}

		row := make(map[string]any)
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}

	return results, rows.Err()
}

// QueryCount runs a single-row COUNT query and returns the value as int64,
// bypassing the []byte normalization that would make MySQL counts strings.
func (c *Conn) QueryCount(ctx context.Context, query string) (int64, error) {
	var count int64
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// QueryValue runs a single-column, single-row query and returns the scanned
// value as a string. Used for version and current-database lookups.
func (c *Conn) QueryValue(ctx context.Context, query string) (string, error) {
	var value sql.NullString
	if err := c.db.QueryRowContext(ctx, query).Scan(&value); err != nil {
		return "", err
	}
	return value.String, nil
}

// Close releases the underlying session. Safe to call more than once; only
// the first call reaches the driver.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	logger.Debug("connection closed", map[string]interface{}{"id": c.ID})
	return c.db.Close()
}
