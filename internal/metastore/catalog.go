package metastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"hive-bridge/internal/domain"
)

var _ domain.Catalog = (*Catalog)(nil)

// Catalog is the SQLite-backed base catalog.
type Catalog struct {
	db *sql.DB
}

// NewCatalog creates a base catalog over an open metastore handle.
func NewCatalog(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// CreateDatabase registers a database.
func (c *Catalog) CreateDatabase(ctx context.Context, name string, ignoreIfExists bool) error {
	exists, err := c.DatabaseExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		if ignoreIfExists {
			return nil
		}
		return &domain.DatabaseAlreadyExistsError{Database: name}
	}
	if _, err := c.db.ExecContext(ctx, `INSERT INTO databases (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("insert database %q: %w", name, err)
	}
	return nil
}

// DatabaseExists reports whether a database is registered.
func (c *Catalog) DatabaseExists(ctx context.Context, name string) (bool, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, `SELECT id FROM databases WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup database %q: %w", name, err)
	}
	return true, nil
}

// RequireDatabaseExists fails with NoSuchDatabaseError when the database is
// not registered.
func (c *Catalog) RequireDatabaseExists(ctx context.Context, name string) error {
	exists, err := c.DatabaseExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return &domain.NoSuchDatabaseError{Database: name}
	}
	return nil
}

// ListDatabases returns all registered database names in name order.
func (c *Catalog) ListDatabases(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT name FROM databases ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan database name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateTable registers a table and its columns.
func (c *Catalog) CreateTable(ctx context.Context, table *domain.CatalogTable, ignoreIfExists bool) error {
	if table == nil || !table.Identifier.Qualified() {
		return domain.ErrValidation("table identifier must carry a database name")
	}
	db, name := table.Identifier.Database, table.Identifier.Name

	dbID, err := c.databaseID(ctx, db)
	if err != nil {
		return err
	}
	exists, err := c.TableExists(ctx, db, name)
	if err != nil {
		return err
	}
	if exists {
		if ignoreIfExists {
			return nil
		}
		return &domain.TableAlreadyExistsError{Database: db, Table: name}
	}

	props, err := json.Marshal(nonNilProperties(table.Storage.Properties))
	if err != nil {
		return fmt.Errorf("marshal table properties: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create table: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tables (database_id, name, table_kind, location, input_format, output_format, serde, compressed, properties)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dbID, name, tableKind(table.Kind),
		table.Storage.Location, table.Storage.InputFormat, table.Storage.OutputFormat,
		table.Storage.SerDe, boolToInt(table.Storage.Compressed), string(props))
	if err != nil {
		return fmt.Errorf("insert table %q.%q: %w", db, name, err)
	}
	tableID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("table id for %q.%q: %w", db, name, err)
	}

	for pos, field := range table.Schema {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (table_id, name, type_kind, type_size, type_scale, nullable, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tableID, field.Name, int(field.Type.Kind), field.Type.Size, field.Type.Scale,
			boolToInt(field.Nullable), pos); err != nil {
			return fmt.Errorf("insert column %q of %q.%q: %w", field.Name, db, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create table: %w", err)
	}
	return nil
}

// DropTable removes a table registration.
func (c *Catalog) DropTable(ctx context.Context, database, table string, ignoreIfNotExists, purge bool) error {
	if err := c.RequireDatabaseExists(ctx, database); err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM tables WHERE name = ? AND database_id = (SELECT id FROM databases WHERE name = ?)`,
		table, database)
	if err != nil {
		return fmt.Errorf("delete table %q.%q: %w", database, table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %q.%q: %w", database, table, err)
	}
	if affected == 0 && !ignoreIfNotExists {
		return &domain.NoSuchTableError{Database: database, Table: table}
	}
	return nil
}

// GetTable returns a registered table with its schema in column order.
func (c *Catalog) GetTable(ctx context.Context, database, table string) (*domain.CatalogTable, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT t.id, t.table_kind, t.location, t.input_format, t.output_format, t.serde, t.compressed, t.properties
		 FROM tables t JOIN databases d ON d.id = t.database_id
		 WHERE d.name = ? AND t.name = ?`, database, table)

	var (
		tableID    int64
		kind       string
		storage    domain.StorageDescriptor
		compressed int
		propsJSON  string
	)
	err := row.Scan(&tableID, &kind, &storage.Location, &storage.InputFormat,
		&storage.OutputFormat, &storage.SerDe, &compressed, &propsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NoSuchTableError{Database: database, Table: table}
	}
	if err != nil {
		return nil, fmt.Errorf("lookup table %q.%q: %w", database, table, err)
	}
	storage.Compressed = compressed != 0
	if err := json.Unmarshal([]byte(propsJSON), &storage.Properties); err != nil {
		return nil, fmt.Errorf("unmarshal properties of %q.%q: %w", database, table, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT name, type_kind, type_size, type_scale, nullable
		 FROM columns WHERE table_id = ? ORDER BY position`, tableID)
	if err != nil {
		return nil, fmt.Errorf("list columns of %q.%q: %w", database, table, err)
	}
	defer rows.Close() //nolint:errcheck

	var fields []domain.SchemaField
	for rows.Next() {
		var (
			field    domain.SchemaField
			kindInt  int
			nullable int
		)
		if err := rows.Scan(&field.Name, &kindInt, &field.Type.Size, &field.Type.Scale, &nullable); err != nil {
			return nil, fmt.Errorf("scan column of %q.%q: %w", database, table, err)
		}
		field.Type.Kind = domain.TypeKind(kindInt)
		field.Nullable = nullable != 0
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.CatalogTable{
		Identifier: domain.TableIdentifier{Database: database, Name: table},
		Kind:       kind,
		Schema:     fields,
		Storage:    storage,
	}, nil
}

// TableExists reports whether a table is registered.
func (c *Catalog) TableExists(ctx context.Context, database, table string) (bool, error) {
	var id int64
	err := c.db.QueryRowContext(ctx,
		`SELECT t.id FROM tables t JOIN databases d ON d.id = t.database_id
		 WHERE d.name = ? AND t.name = ?`, database, table).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup table %q.%q: %w", database, table, err)
	}
	return true, nil
}

// ListTables lists all registered tables of a database.
func (c *Catalog) ListTables(ctx context.Context, database string) ([]string, error) {
	return c.ListTablesPattern(ctx, database, "*")
}

// ListTablesPattern lists registered tables of a database matching a glob
// pattern ('*' and '?' wildcards), in name order.
func (c *Catalog) ListTablesPattern(ctx context.Context, database, pattern string) ([]string, error) {
	if err := c.RequireDatabaseExists(ctx, database); err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT t.name FROM tables t JOIN databases d ON d.id = t.database_id
		 WHERE d.name = ? AND t.name LIKE ? ESCAPE '\' ORDER BY t.name`,
		database, GlobToLike(pattern))
	if err != nil {
		return nil, fmt.Errorf("list tables of %q: %w", database, err)
	}
	defer rows.Close() //nolint:errcheck

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GlobToLike converts a '*'/'?' glob pattern to a SQL LIKE pattern,
// escaping LIKE metacharacters present in the input.
func GlobToLike(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%':
			b.WriteString(`\%`)
		case '_':
			b.WriteString(`\_`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c *Catalog) databaseID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, `SELECT id FROM databases WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.NoSuchDatabaseError{Database: name}
	}
	if err != nil {
		return 0, fmt.Errorf("lookup database %q: %w", name, err)
	}
	return id, nil
}

func tableKind(kind string) string {
	if kind == "" {
		return domain.TableKindExternal
	}
	return kind
}

func nonNilProperties(props map[string]string) map[string]string {
	if props == nil {
		return map[string]string{}
	}
	return props
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
