// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"hive-bridge/internal/domain"
)

// === Remote connection mock ===

// MockConnection implements domain.RemoteConnection for testing. It records
// every executed statement and tracks whether any two remote calls ever ran
// concurrently, which the synchronized executor must prevent.
type MockConnection struct {
	ExecFn    func(ctx context.Context, query string) error
	ColumnsFn func(ctx context.Context, catalog, database, table, columnPattern string) (domain.Cursor, error)
	TablesFn  func(ctx context.Context, catalog, database, tablePattern string, types []string) (domain.Cursor, error)

	// Delay is applied inside every remote call to widen the window in
	// which overlapping calls would be observable.
	Delay time.Duration

	mu         sync.Mutex
	statements []string
	active     int
	overlapped bool
}

var _ domain.RemoteConnection = (*MockConnection)(nil)

// CreateStatement implements the interface method for testing.
func (m *MockConnection) CreateStatement() (domain.Statement, error) {
	return &mockStatement{conn: m}, nil
}

// Metadata implements the interface method for testing.
func (m *MockConnection) Metadata() domain.MetadataReader {
	return &mockMetadata{conn: m}
}

// Statements returns the executed statement texts in order.
func (m *MockConnection) Statements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.statements...)
}

// Overlapped reports whether any two remote calls were ever in flight at
// the same time.
func (m *MockConnection) Overlapped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlapped
}

func (m *MockConnection) enter() {
	m.mu.Lock()
	m.active++
	if m.active > 1 {
		m.overlapped = true
	}
	m.mu.Unlock()
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
}

func (m *MockConnection) exit() {
	m.mu.Lock()
	m.active--
	m.mu.Unlock()
}

type mockStatement struct {
	conn *MockConnection
}

func (s *mockStatement) ExecuteUpdate(ctx context.Context, query string) error {
	s.conn.enter()
	defer s.conn.exit()

	s.conn.mu.Lock()
	s.conn.statements = append(s.conn.statements, query)
	s.conn.mu.Unlock()

	if s.conn.ExecFn != nil {
		return s.conn.ExecFn(ctx, query)
	}
	return nil
}

func (s *mockStatement) Close() error { return nil }

type mockMetadata struct {
	conn *MockConnection
}

func (m *mockMetadata) Columns(ctx context.Context, catalog, database, table, columnPattern string) (domain.Cursor, error) {
	m.conn.enter()
	defer m.conn.exit()
	if m.conn.ColumnsFn != nil {
		return m.conn.ColumnsFn(ctx, catalog, database, table, columnPattern)
	}
	panic("unexpected call to MockConnection metadata Columns")
}

func (m *mockMetadata) Tables(ctx context.Context, catalog, database, tablePattern string, types []string) (domain.Cursor, error) {
	m.conn.enter()
	defer m.conn.exit()
	if m.conn.TablesFn != nil {
		return m.conn.TablesFn(ctx, catalog, database, tablePattern, types)
	}
	panic("unexpected call to MockConnection metadata Tables")
}

// === Cursor fake ===

// FakeCursor implements domain.Cursor over in-memory rows.
type FakeCursor struct {
	Rows    [][]any
	IterErr error // reported by Err after rows are exhausted

	idx    int
	closed bool
}

var _ domain.Cursor = (*FakeCursor)(nil)

// Next implements the interface method for testing.
func (c *FakeCursor) Next() bool {
	if c.idx >= len(c.Rows) {
		return false
	}
	c.idx++
	return true
}

// String implements the interface method for testing.
func (c *FakeCursor) String(col int) (string, error) {
	v, err := c.value(col)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return fmt.Sprintf("%v", v), nil
}

// Int implements the interface method for testing.
func (c *FakeCursor) Int(col int) (int, error) {
	v, err := c.value(col)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, fmt.Errorf("column %d is %T, not numeric", col, v)
	}
}

// Err implements the interface method for testing.
func (c *FakeCursor) Err() error {
	if c.idx >= len(c.Rows) {
		return c.IterErr
	}
	return nil
}

// Close implements the interface method for testing.
func (c *FakeCursor) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *FakeCursor) Closed() bool { return c.closed }

func (c *FakeCursor) value(col int) (any, error) {
	if c.idx == 0 || c.idx > len(c.Rows) {
		return nil, fmt.Errorf("cursor is not positioned on a row")
	}
	row := c.Rows[c.idx-1]
	if col < 0 || col >= len(row) {
		return nil, fmt.Errorf("column %d out of range", col)
	}
	return row[col], nil
}

// ColumnsRow builds a metadata row in the getColumns layout with the given
// column name, type code, size, and scale.
func ColumnsRow(name string, typeCode, size, scale int) []any {
	return []any{"", "", "", name, typeCode, "", size, 0, scale}
}

// TablesRow builds a metadata row in the getTables layout with the given
// table name.
func TablesRow(name string) []any {
	return []any{"", "", name, "TABLE"}
}

// === Base catalog mock ===

// MockCatalog implements domain.Catalog for testing the façade's delegation
// behavior without a real metastore.
type MockCatalog struct {
	CreateDatabaseFn        func(ctx context.Context, name string, ignoreIfExists bool) error
	DatabaseExistsFn        func(ctx context.Context, name string) (bool, error)
	RequireDatabaseExistsFn func(ctx context.Context, name string) error
	ListDatabasesFn         func(ctx context.Context) ([]string, error)
	CreateTableFn           func(ctx context.Context, table *domain.CatalogTable, ignoreIfExists bool) error
	DropTableFn             func(ctx context.Context, database, table string, ignoreIfNotExists, purge bool) error
	GetTableFn              func(ctx context.Context, database, table string) (*domain.CatalogTable, error)
	TableExistsFn           func(ctx context.Context, database, table string) (bool, error)
	ListTablesFn            func(ctx context.Context, database string) ([]string, error)
	ListTablesPatternFn     func(ctx context.Context, database, pattern string) ([]string, error)

	// CreatedTables collects tables registered through CreateTable.
	CreatedTables []*domain.CatalogTable
	mu            sync.Mutex
}

var _ domain.Catalog = (*MockCatalog)(nil)

// CreateDatabase implements the interface method for testing.
func (m *MockCatalog) CreateDatabase(ctx context.Context, name string, ignoreIfExists bool) error {
	if m.CreateDatabaseFn != nil {
		return m.CreateDatabaseFn(ctx, name, ignoreIfExists)
	}
	return nil
}

// DatabaseExists implements the interface method for testing.
func (m *MockCatalog) DatabaseExists(ctx context.Context, name string) (bool, error) {
	if m.DatabaseExistsFn != nil {
		return m.DatabaseExistsFn(ctx, name)
	}
	return true, nil
}

// RequireDatabaseExists implements the interface method for testing.
func (m *MockCatalog) RequireDatabaseExists(ctx context.Context, name string) error {
	if m.RequireDatabaseExistsFn != nil {
		return m.RequireDatabaseExistsFn(ctx, name)
	}
	return nil
}

// ListDatabases implements the interface method for testing.
func (m *MockCatalog) ListDatabases(ctx context.Context) ([]string, error) {
	if m.ListDatabasesFn != nil {
		return m.ListDatabasesFn(ctx)
	}
	return nil, nil
}

// CreateTable implements the interface method for testing.
func (m *MockCatalog) CreateTable(ctx context.Context, table *domain.CatalogTable, ignoreIfExists bool) error {
	if m.CreateTableFn != nil {
		return m.CreateTableFn(ctx, table, ignoreIfExists)
	}
	m.mu.Lock()
	m.CreatedTables = append(m.CreatedTables, table)
	m.mu.Unlock()
	return nil
}

// DropTable implements the interface method for testing.
func (m *MockCatalog) DropTable(ctx context.Context, database, table string, ignoreIfNotExists, purge bool) error {
	if m.DropTableFn != nil {
		return m.DropTableFn(ctx, database, table, ignoreIfNotExists, purge)
	}
	return nil
}

// GetTable implements the interface method for testing.
func (m *MockCatalog) GetTable(ctx context.Context, database, table string) (*domain.CatalogTable, error) {
	if m.GetTableFn != nil {
		return m.GetTableFn(ctx, database, table)
	}
	panic("unexpected call to MockCatalog.GetTable")
}

// TableExists implements the interface method for testing.
func (m *MockCatalog) TableExists(ctx context.Context, database, table string) (bool, error) {
	if m.TableExistsFn != nil {
		return m.TableExistsFn(ctx, database, table)
	}
	return false, nil
}

// ListTables implements the interface method for testing.
func (m *MockCatalog) ListTables(ctx context.Context, database string) ([]string, error) {
	if m.ListTablesFn != nil {
		return m.ListTablesFn(ctx, database)
	}
	return nil, nil
}

// ListTablesPattern implements the interface method for testing.
func (m *MockCatalog) ListTablesPattern(ctx context.Context, database, pattern string) ([]string, error) {
	if m.ListTablesPatternFn != nil {
		return m.ListTablesPatternFn(ctx, database, pattern)
	}
	return nil, nil
}
