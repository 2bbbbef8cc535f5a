package dialect

import (
	"fmt"
	"regexp"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
)

// DefaultSearchLimit caps search_table results when the caller gives no limit.
const DefaultSearchLimit = 100

// Dialect captures everything that differs between the supported backends:
// driver registration name, DSN construction, placeholder syntax, catalog
// introspection queries, and the pattern-match operator. One implementation
// exists per backend and is picked once when a connection is constructed, so
// call sites never branch on the database type again.
type Dialect interface {
	// Name returns the config.DBType string this dialect serves.
	Name() string

	// DriverName returns the database/sql driver name to open.
	DriverName() string

	// DefaultPort is used when the configuration has no explicit port.
	DefaultPort() int

	// DSN builds a driver DSN from discrete config fields.
	DSN(cfg *config.Config) string

	// DSNFromURL converts a connection URL into the driver's DSN form.
	DSNFromURL(rawURL string) (string, error)

	// DatabaseName extracts the database name from a DSN or URL, for use in
	// catalog queries that filter on the current database.
	DatabaseName(dsn string) string

	// ListTablesQuery returns SQL and bind params listing (table_name,
	// table_type) ordered by name.
	ListTablesQuery(databaseName string) (string, []any)

	// DescribeTableQuery returns SQL and bind params listing column metadata
	// for one table, ordered by ordinal position. A nonexistent table yields
	// an empty result rather than an error.
	DescribeTableQuery(databaseName, tableName string) (string, []any)

	// ListDatabasesQuery returns SQL listing the server's databases.
	ListDatabasesQuery() (string, []any)

	// SearchQuery returns SQL and bind params matching rows where column
	// contains value, capped at limit rows. Table and column identifiers are
	// interpolated into the SQL text; the value is bound wrapped in %.
	SearchQuery(table, column, value string, limit int) (string, []any)

	// VersionQuery returns SQL selecting the server version string.
	VersionQuery() string

	// CurrentDatabaseQuery returns SQL selecting the active database name.
	CurrentDatabaseQuery() string

	// ExplainQuery wraps a statement in the dialect's EXPLAIN form.
	ExplainQuery(sql string) string
}

// ForType resolves a dialect implementation, failing fast on unsupported
// database types before any network I/O is attempted.
func ForType(t config.DBType) (Dialect, error) {
	switch t {
	case config.Postgres:
		return &PostgresDialect{}, nil
	case config.MySQL:
		return &MySQLDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", t)
	}
}

// identifierPattern accepts plain SQL identifiers, optionally qualified with
// a single schema prefix. Quoting is deliberately not supported: the strict
// mode exists to reject obviously hostile input, not to be an SQL parser.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)?$`)

// ValidateIdentifier checks a table or column name against a conservative
// identifier grammar. Only called when the server runs with
// --strict-identifiers; by default identifiers are interpolated verbatim,
// which is the documented trust boundary of this tool.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier")
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier: %q", name)
	}
	return nil
}
