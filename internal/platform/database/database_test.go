package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), "mongo", "mongodb://localhost")
	require.ErrorContains(t, err, "unsupported database driver")
}

func TestDialectorFor(t *testing.T) {
	d, err := dialectorFor("mysql", "u:p@tcp(localhost:3306)/db")
	require.NoError(t, err)
	require.Equal(t, "mysql", d.Name())

	d, err = dialectorFor("postgres", "host=localhost")
	require.NoError(t, err)
	require.Equal(t, "postgres", d.Name())
}
