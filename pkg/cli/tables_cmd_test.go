package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hive-bridge/internal/domain"
)

func TestParseColumnSpecs(t *testing.T) {
	fields, err := parseColumnSpecs([]string{
		"id:BIGINT",
		"name:varchar:255",
		"price:DECIMAL:10:2",
	})
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, domain.SchemaField{
		Name:     "id",
		Type:     domain.FieldType{Kind: domain.TypeBigInt},
		Nullable: true,
	}, fields[0])
	assert.Equal(t, domain.FieldType{Kind: domain.TypeVarchar, Size: 255}, fields[1].Type)
	assert.Equal(t, domain.FieldType{Kind: domain.TypeDecimal, Size: 10, Scale: 2}, fields[2].Type)
}

func TestParseColumnSpecs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{name: "missing type", spec: "id"},
		{name: "empty name", spec: ":INT"},
		{name: "unknown type", spec: "id:WOBBLE"},
		{name: "bad size", spec: "name:VARCHAR:big"},
		{name: "bad scale", spec: "price:DECIMAL:10:two"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseColumnSpecs([]string{tt.spec})
			assert.Error(t, err)
		})
	}
}

func TestParseColumnSpecs_Empty(t *testing.T) {
	fields, err := parseColumnSpecs(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
}
