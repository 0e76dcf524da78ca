package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f := filepath.Join(t.TempDir(), "davc.json")
	require.NoError(t, os.WriteFile(f, []byte(`{"host":"192.168.1.10","username":"admin","thread":2}`), 0644))
	c, err := Parse(f)
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10", c.Host)
	assert.Equal(t, "admin", c.Username)
	assert.Equal(t, 2, c.Thread)
	assert.Equal(t, "http", c.Schema)
	assert.Equal(t, "/sdcard", c.Prefix)
	assert.Equal(t, int64(600), c.Timeout)

	_, err = Parse(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
