package client

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
	"github.com/johnroshan2255/universal-db-mcp/internal/dialect"
)

func newMockConn(t *testing.T) (*Conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return NewConn(db, &dialect.PostgresDialect{}, "testdb"), mock
}

func TestConnQuery_NormalizesRows(t *testing.T) {
	conn, mock := newMockConn(t)
	defer conn.Close()

	mock.ExpectQuery("SELECT id, name, blob FROM users").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "blob"}).
			AddRow(int64(1), "alice", []byte("raw")).
			AddRow(int64(2), nil, []byte("bytes")))
	mock.ExpectClose()

	rows, err := conn.Query(context.Background(), "SELECT id, name, blob FROM users")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0]["id"])
	assert.Equal(t, "alice", rows[0]["name"])
	assert.Equal(t, "raw", rows[0]["blob"], "[]byte values become strings")
	assert.Nil(t, rows[1]["name"])
}

func TestConnQuery_ForwardsParamsPositionally(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectQuery("SELECT * FROM users WHERE email ILIKE $1 LIMIT $2").
		WithArgs("%gmail%", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectClose()

	rows, err := conn.Query(context.Background(), "SELECT * FROM users WHERE email ILIKE $1 LIMIT $2", "%gmail%", 100)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NoError(t, conn.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConnQuery_EmptyResult(t *testing.T) {
	conn, mock := newMockConn(t)
	defer conn.Close()

	mock.ExpectQuery("SELECT * FROM empty_table").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectClose()

	rows, err := conn.Query(context.Background(), "SELECT * FROM empty_table")
	require.NoError(t, err)
	assert.NotNil(t, rows, "empty result is an empty list, not nil")
	assert.Len(t, rows, 0)
}

func TestConnQueryCount(t *testing.T) {
	conn, mock := newMockConn(t)
	defer conn.Close()

	mock.ExpectQuery("SELECT COUNT(*) FROM orders").WillReturnRows(
		sqlmock.NewRows([]string{"count"}).AddRow(42))
	mock.ExpectClose()

	count, err := conn.QueryCount(context.Background(), "SELECT COUNT(*) FROM orders")
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestConnQueryValue(t *testing.T) {
	conn, mock := newMockConn(t)
	defer conn.Close()

	mock.ExpectQuery("SELECT current_database()").WillReturnRows(
		sqlmock.NewRows([]string{"current_database"}).AddRow("testdb"))
	mock.ExpectClose()

	value, err := conn.QueryValue(context.Background(), "SELECT current_database()")
	require.NoError(t, err)
	assert.Equal(t, "testdb", value)
}

func TestConnClose_Idempotent(t *testing.T) {
	conn, mock := newMockConn(t)

	mock.ExpectClose()

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close(), "second close is a no-op")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDSN_URLWinsOverDiscreteFields(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		cfg := &config.Config{
			Type:     config.Postgres,
			URL:      "postgres://real:pw@db1:5433/realdb?sslmode=disable",
			Host:     "ignored-host",
			Port:     9999,
			Database: "ignored-db",
			User:     "ignored-user",
			Password: "ignored-pass",
		}

		d, dsn, dbName, err := resolveDSN(cfg)
		require.NoError(t, err)
		assert.Equal(t, "postgres", d.DriverName())
		assert.Equal(t, cfg.URL, dsn)
		assert.Equal(t, "realdb", dbName)
		assert.NotContains(t, dsn, "ignored")
	})

	t.Run("mysql", func(t *testing.T) {
		cfg := &config.Config{
			Type:     config.MySQL,
			URL:      "mysql://real:pw@db1:3307/realdb",
			Host:     "ignored-host",
			Port:     9999,
			Database: "ignored-db",
			User:     "ignored-user",
		}

		_, dsn, dbName, err := resolveDSN(cfg)
		require.NoError(t, err)
		assert.Equal(t, "real:pw@tcp(db1:3307)/realdb", dsn)
		assert.Equal(t, "realdb", dbName)
	})
}

func TestResolveDSN_DiscreteFields(t *testing.T) {
	cfg := &config.Config{
		Type:     config.MySQL,
		Host:     "localhost",
		Database: "app",
		User:     "root",
		Password: "s3cret",
	}

	_, dsn, dbName, err := resolveDSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "root:s3cret@tcp(localhost:3306)/app", dsn)
	assert.Equal(t, "app", dbName)
}

func TestOpen_InvalidConfig(t *testing.T) {
	// Malformed configuration fails before any connection attempt.
	_, err := Open(context.Background(), &config.Config{Type: config.Postgres})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{
		Type: "sqlite",
		URL:  "file:test.db",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}
