package dialect

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
)

// MySQLDialect implements Dialect for MySQL via go-sql-driver/mysql.
type MySQLDialect struct{}

func (d *MySQLDialect) Name() string       { return string(config.MySQL) }
func (d *MySQLDialect) DriverName() string { return "mysql" }
func (d *MySQLDialect) DefaultPort() int   { return 3306 }

func (d *MySQLDialect) DSN(cfg *config.Config) string {
	port := cfg.Port
	if port == 0 {
		port = d.DefaultPort()
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", cfg.User, cfg.Password, cfg.Host, port, cfg.Database)
}

// DSNFromURL reparses a mysql:// URL into the driver's DSN form; the
// go-sql-driver does not accept URLs directly. A string already in DSN form
// is passed through unchanged.
func (d *MySQLDialect) DSNFromURL(rawURL string) (string, error) {
	if !strings.Contains(rawURL, "://") {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid connection URL: %v", err)
	}
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = fmt.Sprintf("%d", d.DefaultPort())
	}
	user := u.User.Username()
	password, _ := u.User.Password()
	database := strings.TrimPrefix(u.Path, "/")
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", user, password, host, port, database), nil
}

func (d *MySQLDialect) DatabaseName(dsn string) string {
	// DSN form: user:password@tcp(host:port)/dbname?params
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			return strings.TrimPrefix(u.Path, "/")
		}
		return ""
	}
	parts := strings.Split(dsn, "/")
	if len(parts) < 2 {
		return ""
	}
	dbPart := parts[len(parts)-1]
	if idx := strings.Index(dbPart, "?"); idx != -1 {
		dbPart = dbPart[:idx]
	}
	return dbPart
}

func (d *MySQLDialect) ListTablesQuery(databaseName string) (string, []any) {
	return `SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = ?
		ORDER BY table_name`, []any{databaseName}
}

func (d *MySQLDialect) DescribeTableQuery(databaseName, tableName string) (string, []any) {
	return `SELECT column_name, data_type, character_maximum_length, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = ? AND table_name = ?
		ORDER BY ordinal_position`, []any{databaseName, tableName}
}

func (d *MySQLDialect) ListDatabasesQuery() (string, []any) {
	return "SHOW DATABASES", nil
}

func (d *MySQLDialect) SearchQuery(table, column, value string, limit int) (string, []any) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	// LIKE case sensitivity follows the column's collation.
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s LIKE ? LIMIT ?", table, column)
	return query, []any{"%" + value + "%", limit}
}

func (d *MySQLDialect) VersionQuery() string { return "SELECT VERSION()" }

func (d *MySQLDialect) CurrentDatabaseQuery() string { return "SELECT DATABASE()" }

func (d *MySQLDialect) ExplainQuery(sql string) string {
	return "EXPLAIN " + sql
}
