package hive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive-bridge/internal/domain"
)

func TestMapColumnType(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		size   int
		scale  int
		signed bool
		want   domain.FieldType
	}{
		{"boolean", domain.TypeCodeBoolean, 0, 0, true, domain.FieldType{Kind: domain.TypeBoolean}},
		{"bit", domain.TypeCodeBit, 1, 0, true, domain.FieldType{Kind: domain.TypeBoolean}},
		{"tinyint", domain.TypeCodeTinyInt, 3, 0, true, domain.FieldType{Kind: domain.TypeTinyInt}},
		{"unsigned tinyint promotes", domain.TypeCodeTinyInt, 3, 0, false, domain.FieldType{Kind: domain.TypeSmallInt}},
		{"smallint", domain.TypeCodeSmallInt, 5, 0, true, domain.FieldType{Kind: domain.TypeSmallInt}},
		{"unsigned smallint promotes", domain.TypeCodeSmallInt, 5, 0, false, domain.FieldType{Kind: domain.TypeInt}},
		{"integer", domain.TypeCodeInteger, 10, 0, true, domain.FieldType{Kind: domain.TypeInt}},
		{"unsigned integer promotes", domain.TypeCodeInteger, 10, 0, false, domain.FieldType{Kind: domain.TypeBigInt}},
		{"bigint", domain.TypeCodeBigInt, 19, 0, true, domain.FieldType{Kind: domain.TypeBigInt}},
		{"unsigned bigint becomes decimal", domain.TypeCodeBigInt, 20, 0, false, domain.FieldType{Kind: domain.TypeDecimal, Size: 20}},
		{"real", domain.TypeCodeReal, 0, 0, true, domain.FieldType{Kind: domain.TypeFloat}},
		{"float is double width", domain.TypeCodeFloat, 0, 0, true, domain.FieldType{Kind: domain.TypeDouble}},
		{"double", domain.TypeCodeDouble, 0, 0, true, domain.FieldType{Kind: domain.TypeDouble}},
		{"decimal keeps precision and scale", domain.TypeCodeDecimal, 10, 2, true, domain.FieldType{Kind: domain.TypeDecimal, Size: 10, Scale: 2}},
		{"numeric", domain.TypeCodeNumeric, 18, 4, true, domain.FieldType{Kind: domain.TypeDecimal, Size: 18, Scale: 4}},
		{"char", domain.TypeCodeChar, 8, 0, true, domain.FieldType{Kind: domain.TypeChar, Size: 8}},
		{"varchar", domain.TypeCodeVarchar, 255, 0, true, domain.FieldType{Kind: domain.TypeVarchar, Size: 255}},
		{"longvarchar", domain.TypeCodeLongVarchar, 0, 0, true, domain.FieldType{Kind: domain.TypeString}},
		{"binary", domain.TypeCodeBinary, 16, 0, true, domain.FieldType{Kind: domain.TypeBinary}},
		{"varbinary", domain.TypeCodeVarBinary, 16, 0, true, domain.FieldType{Kind: domain.TypeBinary}},
		{"date", domain.TypeCodeDate, 0, 0, true, domain.FieldType{Kind: domain.TypeDate}},
		{"time", domain.TypeCodeTime, 0, 0, true, domain.FieldType{Kind: domain.TypeTime}},
		{"timestamp", domain.TypeCodeTimestamp, 0, 0, true, domain.FieldType{Kind: domain.TypeTimestamp}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MapColumnType(tt.code, tt.size, tt.scale, tt.signed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapColumnType_Unsupported(t *testing.T) {
	_, err := MapColumnType(domain.TypeCodeOther, 0, 0, true)
	require.Error(t, err)

	var unsupported *domain.UnsupportedColumnTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, domain.TypeCodeOther, unsupported.TypeCode)
}

func TestRenderTypeName(t *testing.T) {
	tests := []struct {
		ft   domain.FieldType
		want string
	}{
		{domain.FieldType{Kind: domain.TypeInt}, "INT"},
		{domain.FieldType{Kind: domain.TypeBoolean}, "BOOLEAN"},
		{domain.FieldType{Kind: domain.TypeDecimal, Size: 10, Scale: 2}, "DECIMAL(10,2)"},
		{domain.FieldType{Kind: domain.TypeDecimal}, "DECIMAL"},
		{domain.FieldType{Kind: domain.TypeVarchar, Size: 255}, "VARCHAR(255)"},
		{domain.FieldType{Kind: domain.TypeVarchar}, "STRING"},
		{domain.FieldType{Kind: domain.TypeChar, Size: 4}, "CHAR(4)"},
		{domain.FieldType{Kind: domain.TypeTimestamp}, "TIMESTAMP"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RenderTypeName(tt.ft))
	}
}
