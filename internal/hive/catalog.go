// Package hive implements the catalog contract against a remote,
// session-bound Hive-compatible metadata service. Remote round-trips are
// serialized per catalog instance, client failures are translated into the
// domain error model, and remote column descriptors are bridged into native
// field types. Operations without a remote-specific implementation are
// delegated to the base catalog.
package hive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"hive-bridge/internal/ddl"
	"hive-bridge/internal/domain"
)

// Result column positions in remote metadata result sets (JDBC
// DatabaseMetaData layout, zero-indexed).
const (
	tableNamePos     = 2
	columnNamePos    = 3
	dataTypePos      = 4
	columnSizePos    = 6
	decimalDigitsPos = 8
)

// allColumnsPattern matches every column of a table in a metadata query.
const allColumnsPattern = "*"

// allTablesPattern matches every table of a database in a metadata query.
const allTablesPattern = "*"

var _ domain.Catalog = (*Catalog)(nil)

// Catalog is the remote catalog façade. A single instance is long-lived and
// safe for concurrent use; all remote-communicating operations share one
// exclusive lock for the instance's lifetime.
type Catalog struct {
	domain.Catalog // base catalog; handles registration and unlisted operations

	provider domain.ConnectionProvider
	registry *ClientErrorRegistry
	logger   *slog.Logger
	mu       sync.Mutex
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the façade's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) { c.logger = logger }
}

// WithClientErrorRegistry replaces the default client error registry.
func WithClientErrorRegistry(registry *ClientErrorRegistry) Option {
	return func(c *Catalog) { c.registry = registry }
}

// New creates a catalog façade over the given base catalog and connection
// provider. The façade never creates or closes remote connections; it
// borrows the active session's connection per operation.
func New(base domain.Catalog, provider domain.ConnectionProvider, opts ...Option) *Catalog {
	c := &Catalog{
		Catalog:  base,
		provider: provider,
		registry: DefaultClientErrorRegistry(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateTable registers a table. The identifier must carry a database name.
// Before registering, a probe table with a single placeholder integer column
// is created and dropped against the remote service to verify the operation
// is permitted; registration itself is delegated to the base catalog.
func (c *Catalog) CreateTable(ctx context.Context, table *domain.CatalogTable, ignoreIfExists bool) error {
	if table == nil {
		return domain.ErrValidation("table is required")
	}
	if !table.Identifier.Qualified() {
		return domain.ErrValidation("table identifier %q must carry a database name", table.Identifier.Name)
	}
	db, name := table.Identifier.Database, table.Identifier.Name

	if err := c.Catalog.RequireDatabaseExists(ctx, db); err != nil {
		return err
	}
	exists, err := c.Catalog.TableExists(ctx, db, name)
	if err != nil {
		return err
	}
	if exists {
		if ignoreIfExists {
			return nil
		}
		return &domain.TableAlreadyExistsError{Database: db, Table: name}
	}

	return c.withClient(ctx, func(conn domain.RemoteConnection) error {
		st, err := conn.CreateStatement()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		// Probe: a real create+drop round-trip verifies the remote service
		// permits table creation before any metadata is recorded locally.
		probe := fmt.Sprintf("CREATE TABLE %s (dummy INT)", ddl.QualifiedName(db, name))
		if err := st.ExecuteUpdate(ctx, probe); err != nil {
			return err
		}
		if err := st.ExecuteUpdate(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s.%s", db, name)); err != nil {
			return err
		}

		c.logger.Debug("create probe succeeded", "database", db, "table", name)
		return c.Catalog.CreateTable(ctx, table, ignoreIfExists)
	})
}

// DropTable issues a remote drop-table statement, then removes the local
// registration. The IF EXISTS and PURGE clauses are included only when
// requested.
func (c *Catalog) DropTable(ctx context.Context, database, table string, ignoreIfNotExists, purge bool) error {
	return c.withClient(ctx, func(conn domain.RemoteConnection) error {
		if err := c.Catalog.RequireDatabaseExists(ctx, database); err != nil {
			return err
		}

		st, err := conn.CreateStatement()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var b strings.Builder
		b.WriteString("DROP TABLE ")
		if ignoreIfNotExists {
			b.WriteString("IF EXISTS ")
		}
		b.WriteString(database + "." + table)
		if purge {
			b.WriteString(" PURGE")
		}
		if err := st.ExecuteUpdate(ctx, b.String()); err != nil {
			return err
		}

		c.logger.Debug("dropped remote table", "database", database, "table", table, "purge", purge)
		return c.Catalog.DropTable(ctx, database, table, true, purge)
	})
}

// GetTable builds a catalog entry from the remote column metadata. Fields
// appear in remote column order and are always nullable; the storage
// descriptor is left empty because the remote service does not expose it.
func (c *Catalog) GetTable(ctx context.Context, database, table string) (*domain.CatalogTable, error) {
	var result *domain.CatalogTable
	err := c.withClient(ctx, func(conn domain.RemoteConnection) error {
		cur, err := conn.Metadata().Columns(ctx, "", database, table, allColumnsPattern)
		if err != nil {
			return err
		}
		defer cur.Close() //nolint:errcheck

		var fields []domain.SchemaField
		for cur.Next() {
			name, err := cur.String(columnNamePos)
			if err != nil {
				return err
			}
			code, err := cur.Int(dataTypePos)
			if err != nil {
				return err
			}
			size, err := cur.Int(columnSizePos)
			if err != nil {
				return err
			}
			scale, err := cur.Int(decimalDigitsPos)
			if err != nil {
				return err
			}
			// The metadata service does not report signedness; treat every
			// column as signed and as nullable.
			ft, err := MapColumnType(code, size, scale, true)
			if err != nil {
				return fmt.Errorf("column %q: %w", name, err)
			}
			fields = append(fields, domain.SchemaField{Name: name, Type: ft, Nullable: true})
		}
		if err := cur.Err(); err != nil {
			return err
		}
		if len(fields) == 0 {
			return &domain.NoSuchTableError{Database: database, Table: table}
		}

		result = &domain.CatalogTable{
			Identifier: domain.TableIdentifier{Database: database, Name: table},
			Kind:       domain.TableKindExternal,
			Schema:     fields,
			Storage:    domain.StorageDescriptor{},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TableExists reports whether the remote table-metadata query scoped to the
// exact database and table yields at least one row.
func (c *Catalog) TableExists(ctx context.Context, database, table string) (bool, error) {
	var exists bool
	err := c.withClient(ctx, func(conn domain.RemoteConnection) error {
		cur, err := conn.Metadata().Tables(ctx, "", database, table, nil)
		if err != nil {
			return err
		}
		defer cur.Close() //nolint:errcheck

		exists = cur.Next()
		return cur.Err()
	})
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListTables lists all tables in a database.
func (c *Catalog) ListTables(ctx context.Context, database string) ([]string, error) {
	return c.ListTablesPattern(ctx, database, allTablesPattern)
}

// ListTablesPattern lists tables in a database matching a pattern, in the
// order returned by the remote metadata query.
func (c *Catalog) ListTablesPattern(ctx context.Context, database, pattern string) ([]string, error) {
	var names []string
	err := c.withClient(ctx, func(conn domain.RemoteConnection) error {
		cur, err := conn.Metadata().Tables(ctx, "", database, pattern, nil)
		if err != nil {
			return err
		}
		defer cur.Close() //nolint:errcheck

		for cur.Next() {
			name, err := cur.String(tableNamePos)
			if err != nil {
				return err
			}
			names = append(names, name)
		}
		return cur.Err()
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
