package remote

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive-bridge/internal/domain"
)

func newSQLiteTestConn(t *testing.T) *Conn {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteConn(db)
}

func execDDL(t *testing.T, conn *Conn, stmts ...string) {
	t.Helper()
	st, err := conn.CreateStatement()
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	for _, s := range stmts {
		require.NoError(t, st.ExecuteUpdate(context.Background(), s))
	}
}

func TestConnForDriver(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "remote.db"))
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	assert.IsType(t, sqliteDialect{}, ConnForDriver(db, "sqlite3").dialect)
	assert.IsType(t, infoSchemaDialect{}, ConnForDriver(db, "mysql").dialect)
}

func TestSQLiteMetadata_Tables_ExactNameIsNotAWildcard(t *testing.T) {
	conn := newSQLiteTestConn(t)
	execDDL(t, conn, `CREATE TABLE orderXitems (id INTEGER)`)

	cur, err := conn.Metadata().Tables(context.Background(), "", "main", "order_items", nil)
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck

	assert.False(t, cur.Next(), "exact name order_items must not match orderXitems")
	assert.NoError(t, cur.Err())
}

func TestSQLiteMetadata_Tables_GlobPattern(t *testing.T) {
	conn := newSQLiteTestConn(t)
	execDDL(t, conn,
		`CREATE TABLE order_items (id INTEGER)`,
		`CREATE TABLE orders (id INTEGER)`,
		`CREATE TABLE customers (id INTEGER)`,
	)

	cur, err := conn.Metadata().Tables(context.Background(), "", "main", "order*", nil)
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck

	var names []string
	for cur.Next() {
		name, err := cur.String(2)
		require.NoError(t, err)
		names = append(names, name)
	}
	require.NoError(t, cur.Err())
	assert.Equal(t, []string{"order_items", "orders"}, names)
}

func TestSQLiteMetadata_Tables_TypeFilter(t *testing.T) {
	conn := newSQLiteTestConn(t)
	execDDL(t, conn,
		`CREATE TABLE orders (id INTEGER)`,
		`CREATE VIEW recent_orders AS SELECT id FROM orders`,
	)

	cur, err := conn.Metadata().Tables(context.Background(), "", "main", "*", []string{"VIEW"})
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck

	require.True(t, cur.Next())
	name, err := cur.String(2)
	require.NoError(t, err)
	assert.Equal(t, "recent_orders", name)
	kind, err := cur.String(3)
	require.NoError(t, err)
	assert.Equal(t, "VIEW", kind)
	assert.False(t, cur.Next())
	assert.NoError(t, cur.Err())
}

func TestSQLiteMetadata_Columns(t *testing.T) {
	conn := newSQLiteTestConn(t)
	execDDL(t, conn, `CREATE TABLE order_items (
		id INTEGER NOT NULL,
		note TEXT,
		price DECIMAL(10,2)
	)`)

	cur, err := conn.Metadata().Columns(context.Background(), "", "main", "order_items", "*")
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck

	want := []struct {
		name string
		code int
	}{
		{"id", domain.TypeCodeInteger},
		{"note", domain.TypeCodeLongVarchar},
		{"price", domain.TypeCodeDecimal},
	}
	for _, w := range want {
		require.True(t, cur.Next())
		name, err := cur.String(3)
		require.NoError(t, err)
		assert.Equal(t, w.name, name)
		code, err := cur.Int(4)
		require.NoError(t, err)
		assert.Equal(t, w.code, code, w.name)
	}
	assert.False(t, cur.Next())
	assert.NoError(t, cur.Err())
}
