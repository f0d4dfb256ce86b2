package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreGooseFiles(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, migrationDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		body, err := fs.ReadFile(migrationFS, migrationDir+"/"+entry.Name())
		require.NoError(t, err)

		text := string(body)
		assert.Contains(t, text, "-- +goose Up", entry.Name())
		assert.Contains(t, text, "-- +goose Down", entry.Name())
	}
}

func TestInitialSchemaCarriesIdentityConstraints(t *testing.T) {
	body, err := fs.ReadFile(migrationFS, migrationDir+"/00001_init.sql")
	require.NoError(t, err)
	text := string(body)

	for _, want := range []string{
		"UNIQUE (name, location, international)",
		"UNIQUE (school_id, name, course_num)",
		"pending_school_other_check",
		"pending_course_other_check",
	} {
		assert.True(t, strings.Contains(text, want), "missing %q", want)
	}
}
