package remote

import (
	"context"
	"database/sql"
	"strings"

	"hive-bridge/internal/domain"
)

var _ domain.RemoteConnection = (*Conn)(nil)

// Conn implements the RemoteConnection contract over a database/sql handle.
// It never closes the handle; the owning session does.
type Conn struct {
	db      *sql.DB
	dialect dialect
}

// NewConn wraps an open database handle. Metadata is read from the
// information_schema views, which MySQL-compatible and Postgres-compatible
// remote endpoints expose.
func NewConn(db *sql.DB) *Conn {
	return &Conn{db: db, dialect: infoSchemaDialect{}}
}

// NewSQLiteConn wraps an open SQLite handle. SQLite has no
// information_schema, so metadata is read from sqlite_master and
// pragma_table_info instead.
func NewSQLiteConn(db *sql.DB) *Conn {
	return &Conn{db: db, dialect: sqliteDialect{}}
}

// ConnForDriver selects the metadata dialect for a database/sql driver name.
func ConnForDriver(db *sql.DB, driver string) *Conn {
	if driver == "sqlite3" {
		return NewSQLiteConn(db)
	}
	return NewConn(db)
}

// CreateStatement returns a statement execution context.
func (c *Conn) CreateStatement() (domain.Statement, error) {
	return &statement{db: c.db}, nil
}

// Metadata returns the metadata query surface.
func (c *Conn) Metadata() domain.MetadataReader {
	return &metadata{db: c.db, dialect: c.dialect}
}

type statement struct {
	db *sql.DB
}

func (s *statement) ExecuteUpdate(ctx context.Context, query string) error {
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return &ClientError{Op: "execute update", Err: err}
	}
	return nil
}

func (s *statement) Close() error { return nil }

// dialect builds the metadata queries for one family of remote endpoints.
// Both queries must project into the JDBC DatabaseMetaData column layouts
// consumed positionally by the catalog façade.
type dialect interface {
	columns(database, table, columnPattern string) (string, []any)
	tables(database, tablePattern string, types []string) (string, []any)
}

// columnsQuery projects information_schema.columns into the JDBC
// DatabaseMetaData.getColumns column layout: TABLE_CAT, TABLE_SCHEM,
// TABLE_NAME, COLUMN_NAME, DATA_TYPE, TYPE_NAME, COLUMN_SIZE,
// BUFFER_LENGTH, DECIMAL_DIGITS. DATA_TYPE is reported as a type name and
// rewritten to its numeric code by the cursor transform.
const columnsQuery = `SELECT table_catalog, table_schema, table_name, column_name,
       data_type, data_type,
       COALESCE(character_maximum_length, numeric_precision, 0),
       0,
       COALESCE(numeric_scale, 0)
FROM information_schema.columns
WHERE table_schema = ? AND table_name = ? AND column_name LIKE ? ESCAPE '!'
ORDER BY ordinal_position`

// tablesQuery projects information_schema.tables into the JDBC
// DatabaseMetaData.getTables column layout: TABLE_CAT, TABLE_SCHEM,
// TABLE_NAME, TABLE_TYPE.
const tablesQuery = `SELECT table_catalog, table_schema, table_name, table_type
FROM information_schema.tables
WHERE table_schema = ? AND table_name LIKE ? ESCAPE '!'
ORDER BY table_name`

type infoSchemaDialect struct{}

func (infoSchemaDialect) columns(database, table, columnPattern string) (string, []any) {
	return columnsQuery, []any{database, table, globToLike(columnPattern)}
}

func (infoSchemaDialect) tables(database, tablePattern string, types []string) (string, []any) {
	query := tablesQuery
	args := []any{database, globToLike(tablePattern)}
	if len(types) > 0 {
		query = injectTypeFilter(query, "table_type", len(types))
		for _, t := range types {
			args = append(args, t)
		}
	}
	return query, args
}

// sqliteColumnsQuery reads pragma_table_info into the getColumns layout.
// SQLite does not track column sizes, so COLUMN_SIZE and DECIMAL_DIGITS are
// reported as zero.
const sqliteColumnsQuery = `SELECT '', '', ?, name, type, type, 0, 0, 0
FROM pragma_table_info(?)
WHERE name LIKE ? ESCAPE '!'
ORDER BY cid`

// sqliteTablesQuery reads sqlite_master into the getTables layout. SQLite
// has a single unnamed schema, so the database argument is ignored.
const sqliteTablesQuery = `SELECT '', '', name, UPPER(type)
FROM sqlite_master
WHERE type IN ('table', 'view') AND name LIKE ? ESCAPE '!'
ORDER BY name`

type sqliteDialect struct{}

func (sqliteDialect) columns(_, table, columnPattern string) (string, []any) {
	return sqliteColumnsQuery, []any{table, table, globToLike(columnPattern)}
}

func (sqliteDialect) tables(_, tablePattern string, types []string) (string, []any) {
	query := sqliteTablesQuery
	args := []any{globToLike(tablePattern)}
	if len(types) > 0 {
		query = injectTypeFilter(query, "UPPER(type)", len(types))
		for _, t := range types {
			args = append(args, t)
		}
	}
	return query, args
}

// injectTypeFilter adds an "AND <expr> IN (?, ...)" clause ahead of the
// query's ORDER BY.
func injectTypeFilter(query, expr string, count int) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", count), ", ")
	return strings.Replace(query, "ORDER BY", "AND "+expr+" IN ("+placeholders+")\nORDER BY", 1)
}

type metadata struct {
	db      *sql.DB
	dialect dialect
}

func (m *metadata) Columns(ctx context.Context, catalog, database, table, columnPattern string) (domain.Cursor, error) {
	query, args := m.dialect.columns(database, table, columnPattern)
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &ClientError{Op: "query column metadata", Err: err}
	}
	return newRowsCursor(rows, rewriteDataType)
}

func (m *metadata) Tables(ctx context.Context, catalog, database, tablePattern string, types []string) (domain.Cursor, error) {
	query, args := m.dialect.tables(database, tablePattern, types)
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &ClientError{Op: "query table metadata", Err: err}
	}
	return newRowsCursor(rows, nil)
}

// dataTypePos is the DATA_TYPE position within the getColumns layout.
const dataTypePos = 4

// rewriteDataType replaces the reported type name at DATA_TYPE with its
// numeric code so downstream consumers see the standard code space.
func rewriteDataType(vals []any) error {
	if dataTypePos >= len(vals) {
		return &ProtocolError{Detail: "column metadata row is too short"}
	}
	var name string
	switch t := vals[dataTypePos].(type) {
	case string:
		name = t
	case []byte:
		name = string(t)
	default:
		return &ProtocolError{Detail: "DATA_TYPE is not textual"}
	}
	vals[dataTypePos] = int64(typeCodeFor(name))
	return nil
}

// typeCodeFor maps a reported column type name to its numeric type code.
// Unrecognized names map to the OTHER code, which the type bridge rejects
// with a typed error.
func typeCodeFor(name string) int {
	base := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	switch base {
	case "bool", "boolean":
		return domain.TypeCodeBoolean
	case "bit":
		return domain.TypeCodeBit
	case "tinyint":
		return domain.TypeCodeTinyInt
	case "smallint", "int2":
		return domain.TypeCodeSmallInt
	case "int", "integer", "mediumint", "int4":
		return domain.TypeCodeInteger
	case "bigint", "int8":
		return domain.TypeCodeBigInt
	case "real":
		return domain.TypeCodeReal
	case "float":
		return domain.TypeCodeFloat
	case "double", "double precision":
		return domain.TypeCodeDouble
	case "numeric":
		return domain.TypeCodeNumeric
	case "decimal":
		return domain.TypeCodeDecimal
	case "char", "character":
		return domain.TypeCodeChar
	case "varchar", "character varying":
		return domain.TypeCodeVarchar
	case "string", "text", "longtext", "mediumtext", "clob":
		return domain.TypeCodeLongVarchar
	case "binary":
		return domain.TypeCodeBinary
	case "varbinary":
		return domain.TypeCodeVarBinary
	case "blob", "bytea", "longblob":
		return domain.TypeCodeLongVarBinary
	case "date":
		return domain.TypeCodeDate
	case "time":
		return domain.TypeCodeTime
	case "timestamp", "datetime":
		return domain.TypeCodeTimestamp
	default:
		return domain.TypeCodeOther
	}
}

// globToLike converts the metadata wildcard pattern ('*' matching any
// sequence, '?' any single character) into a SQL LIKE pattern. LIKE
// metacharacters in the input are escaped with '!' so an exact name such
// as order_items never matches as a wildcard; the metadata queries carry
// the matching ESCAPE clause. The escape character is '!' rather than a
// backslash because a backslash inside a string literal is itself an
// escape on MySQL-compatible endpoints.
func globToLike(pattern string) string {
	if pattern == "" {
		return "%"
	}
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%':
			b.WriteString("!%")
		case '_':
			b.WriteString("!_")
		case '!':
			b.WriteString("!!")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
