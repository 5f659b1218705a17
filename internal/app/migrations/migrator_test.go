package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersions(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "001", versions[0])
}

func TestInitSchema(t *testing.T) {
	content, err := fs.ReadFile(embedded, "sql/001_init.sql")
	require.NoError(t, err)

	sql := string(content)
	for _, table := range []string{"users", "etudiants", "formateurs", "cours", "inscriptions", "notes"} {
		assert.Contains(t, sql, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.True(t, strings.Contains(sql, "WHERE statut = 'ACTIVE'"), "active registrations must be unique")
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "001", version("001_init.sql"))
	assert.Equal(t, "002", version("002.sql"))
}
