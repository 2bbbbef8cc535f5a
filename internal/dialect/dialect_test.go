package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnroshan2255/universal-db-mcp/internal/config"
)

func TestForType(t *testing.T) {
	pg, err := ForType(config.Postgres)
	require.NoError(t, err)
	assert.Equal(t, "postgres", pg.DriverName())

	my, err := ForType(config.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "mysql", my.DriverName())
}

func TestForType_Unsupported(t *testing.T) {
	for _, bad := range []config.DBType{"", "sqlite", "oracle", "POSTGRES"} {
		t.Run(string(bad), func(t *testing.T) {
			_, err := ForType(bad)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unsupported database type")
		})
	}
}

func TestValidateIdentifier(t *testing.T) {
	valid := []string{
		"users",
		"Users",
		"_private",
		"order_items",
		"t1",
		"col$2",
		"public.users",
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateIdentifier(name))
		})
	}

	invalid := []string{
		"",
		"1table",
		"users; DROP TABLE users",
		"users--",
		"users ",
		`"users"`,
		"a.b.c",
		"users)",
	}
	for _, name := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidateIdentifier(name))
		})
	}
}
