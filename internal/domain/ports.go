package domain

import "context"

// Catalog is the catalog contract. Implemented by the metastore base catalog
// and by the hive façade layered on top of it.
type Catalog interface {
	CreateDatabase(ctx context.Context, name string, ignoreIfExists bool) error
	DatabaseExists(ctx context.Context, name string) (bool, error)
	RequireDatabaseExists(ctx context.Context, name string) error
	ListDatabases(ctx context.Context) ([]string, error)

	CreateTable(ctx context.Context, table *CatalogTable, ignoreIfExists bool) error
	DropTable(ctx context.Context, database, table string, ignoreIfNotExists, purge bool) error
	GetTable(ctx context.Context, database, table string) (*CatalogTable, error)
	TableExists(ctx context.Context, database, table string) (bool, error)
	ListTables(ctx context.Context, database string) ([]string, error)
	ListTablesPattern(ctx context.Context, database, pattern string) ([]string, error)
}

// ConnectionProvider resolves the currently active session's remote
// connection. Implementations must tolerate the active session changing
// between calls; the connection is borrowed per operation, never owned.
type ConnectionProvider interface {
	Connection(ctx context.Context) (RemoteConnection, error)
}

// ProviderFunc adapts a function to the ConnectionProvider interface.
type ProviderFunc func(ctx context.Context) (RemoteConnection, error)

// Connection implements ConnectionProvider.
func (f ProviderFunc) Connection(ctx context.Context) (RemoteConnection, error) { return f(ctx) }

// RemoteConnection is a session-scoped handle to the remote metadata service.
type RemoteConnection interface {
	CreateStatement() (Statement, error)
	Metadata() MetadataReader
}

// Statement executes SQL text against the remote service.
type Statement interface {
	ExecuteUpdate(ctx context.Context, query string) error
	Close() error
}

// MetadataReader issues metadata queries against the remote service.
// Result column positions follow the JDBC DatabaseMetaData layout.
type MetadataReader interface {
	// Columns lists columns of tables matching the given database, table,
	// and column pattern, in remote column order.
	Columns(ctx context.Context, catalog, database, table, columnPattern string) (Cursor, error)
	// Tables lists tables matching the given database and table pattern,
	// optionally filtered by table type.
	Tables(ctx context.Context, catalog, database, tablePattern string, types []string) (Cursor, error)
}

// Cursor is a stateful, sequential accessor over a remote result set.
// It must be released with Close on every exit path.
type Cursor interface {
	Next() bool
	// String returns the zero-indexed column of the current row as a string.
	String(col int) (string, error)
	// Int returns the zero-indexed column of the current row as an int.
	Int(col int) (int, error)
	// Err reports any failure that ended iteration early.
	Err() error
	Close() error
}
