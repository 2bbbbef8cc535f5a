package dialect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
)

// PostgresDialect implements Dialect for PostgreSQL via lib/pq.
type PostgresDialect struct{}

func (d *PostgresDialect) Name() string       { return string(config.Postgres) }
func (d *PostgresDialect) DriverName() string { return "postgres" }
func (d *PostgresDialect) DefaultPort() int   { return 5432 }

func (d *PostgresDialect) DSN(cfg *config.Config) string {
	port := cfg.Port
	if port == 0 {
		port = d.DefaultPort()
	}
	// lib/pq only understands require, verify-full, verify-ca, and disable.
	// The default is disable: this tool targets trusted local databases,
	// and DB_SSLMODE overrides it for anything else.
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.PathEscape(cfg.User), url.PathEscape(cfg.Password), cfg.Host, port, cfg.Database, sslmode)
}

// DSNFromURL passes the URL through unchanged; lib/pq accepts postgres:// URLs.
func (d *PostgresDialect) DSNFromURL(rawURL string) (string, error) {
	return rawURL, nil
}

func (d *PostgresDialect) DatabaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

func (d *PostgresDialect) ListTablesQuery(databaseName string) (string, []any) {
	return `SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name`, nil
}

func (d *PostgresDialect) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	return `SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = $1
		ORDER BY ordinal_position`, []any{tableName}
}

func (d *PostgresDialect) ListDatabasesQuery() (string, []any) {
	return `SELECT datname FROM pg_database WHERE datistemplate = false ORDER BY datname`, nil
}

func (d *PostgresDialect) SearchQuery(table, column, value string, limit int) (string, []any) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s ILIKE $1 LIMIT $2", table, column)
	return query, []any{"%" + value + "%", limit}
}

func (d *PostgresDialect) VersionQuery() string { return "SELECT version()" }

func (d *PostgresDialect) CurrentDatabaseQuery() string { return "SELECT current_database()" }

func (d *PostgresDialect) ExplainQuery(sql string) string {
	return "EXPLAIN " + sql
}
