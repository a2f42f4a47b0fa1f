package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive-bridge/internal/domain"
)

func newMockConn(t *testing.T) (*Conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewConn(db), mock
}

func TestStatement_ExecuteUpdate(t *testing.T) {
	conn, mock := newMockConn(t)
	mock.ExpectExec("DROP TABLE sales.orders").WillReturnResult(sqlmock.NewResult(0, 0))

	st, err := conn.CreateStatement()
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	assert.NoError(t, st.ExecuteUpdate(context.Background(), "DROP TABLE sales.orders"))
}

func TestStatement_ExecuteUpdate_WrapsDriverError(t *testing.T) {
	conn, mock := newMockConn(t)
	driverErr := errors.New("syntax error")
	mock.ExpectExec("CREATE TABLE broken").WillReturnError(driverErr)

	st, err := conn.CreateStatement()
	require.NoError(t, err)

	err = st.ExecuteUpdate(context.Background(), "CREATE TABLE broken")
	require.Error(t, err)

	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, "execute update", clientErr.Op)
	assert.True(t, errors.Is(err, driverErr))
}

func TestMetadata_Columns_RewritesTypeNames(t *testing.T) {
	conn, mock := newMockConn(t)

	rows := sqlmock.NewRows([]string{
		"table_catalog", "table_schema", "table_name", "column_name",
		"data_type", "type_name", "column_size", "buffer_length", "decimal_digits",
	}).
		AddRow("def", "sales", "orders", "id", "bigint", "bigint", 19, 0, 0).
		AddRow("def", "sales", "orders", "name", "varchar(255)", "varchar", 255, 0, 0).
		AddRow("def", "sales", "orders", "total", "decimal", "decimal", 10, 0, 2)
	mock.ExpectQuery(columnsQuery).WithArgs("sales", "orders", "%").WillReturnRows(rows)

	cur, err := conn.Metadata().Columns(context.Background(), "", "sales", "orders", "*")
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck

	want := []struct {
		name string
		code int
	}{
		{"id", domain.TypeCodeBigInt},
		{"name", domain.TypeCodeVarchar},
		{"total", domain.TypeCodeDecimal},
	}
	for _, w := range want {
		require.True(t, cur.Next())
		name, err := cur.String(3)
		require.NoError(t, err)
		assert.Equal(t, w.name, name)
		code, err := cur.Int(4)
		require.NoError(t, err)
		assert.Equal(t, w.code, code)
	}
	assert.False(t, cur.Next())
	assert.NoError(t, cur.Err())
}

func TestMetadata_Tables_PatternAndTypes(t *testing.T) {
	conn, mock := newMockConn(t)

	const query = `SELECT table_catalog, table_schema, table_name, table_type
FROM information_schema.tables
WHERE table_schema = ? AND table_name LIKE ? ESCAPE '!'
AND table_type IN (?, ?)
ORDER BY table_name`
	rows := sqlmock.NewRows([]string{"table_catalog", "table_schema", "table_name", "table_type"}).
		AddRow("def", "sales", "order_items", "TABLE").
		AddRow("def", "sales", "orders", "TABLE")
	mock.ExpectQuery(query).WithArgs("sales", "order%", "TABLE", "VIEW").WillReturnRows(rows)

	cur, err := conn.Metadata().Tables(context.Background(), "", "sales", "order*", []string{"TABLE", "VIEW"})
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

func TestMetadata_Tables_QueryFailure(t *testing.T) {
	conn, mock := newMockConn(t)
	mock.ExpectQuery(tablesQuery).WillReturnError(errors.New("gone away"))

	_, err := conn.Metadata().Tables(context.Background(), "", "sales", "*", nil)
	var clientErr *ClientError
	require.True(t, errors.As(err, &clientErr))
	assert.Equal(t, "query table metadata", clientErr.Op)
}

func TestCursor_OutOfRangeColumn(t *testing.T) {
	conn, mock := newMockConn(t)
	rows := sqlmock.NewRows([]string{"table_catalog", "table_schema", "table_name", "table_type"}).
		AddRow("def", "sales", "orders", "TABLE")
	mock.ExpectQuery(tablesQuery).WithArgs("sales", "%").WillReturnRows(rows)

	cur, err := conn.Metadata().Tables(context.Background(), "", "sales", "*", nil)
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck
	require.True(t, cur.Next())

	_, err = cur.String(9)
	var protoErr *ProtocolError
	assert.True(t, errors.As(err, &protoErr))
}

func TestCursor_Int_FloatValues(t *testing.T) {
	conn, mock := newMockConn(t)

	rows := sqlmock.NewRows([]string{
		"table_catalog", "table_schema", "table_name", "column_name",
		"data_type", "type_name", "column_size", "buffer_length", "decimal_digits",
	}).
		AddRow("def", "sales", "orders", "total", "decimal", "decimal", 10.0, 0, 2.5)
	mock.ExpectQuery(columnsQuery).WithArgs("sales", "orders", "%").WillReturnRows(rows)

	cur, err := conn.Metadata().Columns(context.Background(), "", "sales", "orders", "*")
	require.NoError(t, err)
	defer cur.Close() //nolint:errcheck
	require.True(t, cur.Next())

	size, err := cur.Int(6)
	require.NoError(t, err)
	assert.Equal(t, 10, size)

	_, err = cur.Int(8)
	var protoErr *ProtocolError
	require.True(t, errors.As(err, &protoErr))
	assert.Contains(t, protoErr.Detail, "non-integral")
}

func TestTypeCodeFor(t *testing.T) {
	for _, tc := range []struct {
		name string
		want int
	}{
		{"boolean", domain.TypeCodeBoolean},
		{"BOOL", domain.TypeCodeBoolean},
		{"tinyint", domain.TypeCodeTinyInt},
		{"smallint", domain.TypeCodeSmallInt},
		{"int2", domain.TypeCodeSmallInt},
		{"int", domain.TypeCodeInteger},
		{"INTEGER", domain.TypeCodeInteger},
		{"bigint", domain.TypeCodeBigInt},
		{"int8", domain.TypeCodeBigInt},
		{"real", domain.TypeCodeReal},
		{"float", domain.TypeCodeFloat},
		{"double", domain.TypeCodeDouble},
		{"double precision", domain.TypeCodeDouble},
		{"numeric", domain.TypeCodeNumeric},
		{"decimal(10,2)", domain.TypeCodeDecimal},
		{"char", domain.TypeCodeChar},
		{"varchar(255)", domain.TypeCodeVarchar},
		{"character varying", domain.TypeCodeVarchar},
		{"text", domain.TypeCodeLongVarchar},
		{"string", domain.TypeCodeLongVarchar},
		{"binary", domain.TypeCodeBinary},
		{"varbinary", domain.TypeCodeVarBinary},
		{"blob", domain.TypeCodeLongVarBinary},
		{"bytea", domain.TypeCodeLongVarBinary},
		{"date", domain.TypeCodeDate},
		{"time", domain.TypeCodeTime},
		{"timestamp", domain.TypeCodeTimestamp},
		{"datetime", domain.TypeCodeTimestamp},
		{"geometry", domain.TypeCodeOther},
	} {
		assert.Equal(t, tc.want, typeCodeFor(tc.name), tc.name)
	}
}

func TestGlobToLikePatterns(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"", "%"},
		{"*", "%"},
		{"order*", "order%"},
		{"order?", "order_"},
		{"plain", "plain"},
		{"order_items", "order!_items"},
		{"100%", "100!%"},
		{"bang!", "bang!!"},
	} {
		assert.Equal(t, tc.want, globToLike(tc.in), tc.in)
	}
}
