package repository

import (
    "os"
    "path/filepath"
    "regexp"
    "testing"

    "github.com/stretchr/testify/require"
)

// The user queries name a fixed column list; this pins schema.sql to
// it so the DDL cannot drift out from under the SELECTs.
func TestUsersSchemaCoversScannedColumns(t *testing.T) {
    ddl, err := os.ReadFile(filepath.Join("..", "..", "schema.sql"))
    require.NoError(t, err)

    m := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS users \((.*?)\) ENGINE`).FindSubmatch(ddl)
    require.NotNil(t, m, "users table not found in schema.sql")
    table := string(m[1])

    for _, col := range []string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"} {
        require.Regexp(t, `(?m)^\s*`+col+`\s`, table, "users DDL is missing column %q", col)
    }
}
