package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SortsAndSkips(t *testing.T) {
	source := fstest.MapFS{
		"010_late.sql":   {Data: []byte("SELECT 10;")},
		"002_second.sql": {Data: []byte("SELECT 2;")},
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"readme.md":      {Data: []byte("docs")},
		"init.sql":       {Data: []byte("no prefix")},
		"abc_bad.sql":    {Data: []byte("not numeric")},
	}

	got, err := Load(source)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "SELECT 1;", got[0].SQL)
	assert.Equal(t, 2, got[1].Version)
	assert.Equal(t, 10, got[2].Version)
}

func TestEmbeddedSchema(t *testing.T) {
	got, err := Load(files)
	require.NoError(t, err)
	require.NotEmpty(t, got)

	schema := got[0].SQL
	assert.Contains(t, schema, "btree_gist")
	assert.Contains(t, schema, "appointments_no_overlap")
	assert.Contains(t, schema, "appointments_user_slot_uniq")
	assert.Contains(t, schema, "duration_minutes > 10")
}
