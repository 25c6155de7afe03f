package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T, cfg Config) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(sqlx.NewDb(db, "sqlmock"), cfg), mock
}

// mockRows builds result rows that carry column metadata.
func mockRows(names ...string) *sqlmock.Rows {
	defs := make([]*sqlmock.Column, len(names))
	for i, name := range names {
		defs[i] = sqlmock.NewColumn(name)
	}
	return sqlmock.NewRowsWithColumnDefinition(defs...)
}
