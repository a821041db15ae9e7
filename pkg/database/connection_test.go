package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnection_SQLiteMemory(t *testing.T) {
	db, err := NewConnection("sqlite", ":memory:", false)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.HealthCheck())
}

func TestNewConnection_UnsupportedDriver(t *testing.T) {
	_, err := NewConnection("mysql", "whatever", false)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
