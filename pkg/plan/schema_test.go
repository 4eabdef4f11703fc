package plan

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/ddlplan/pkg/errors"
)

func TestParseResultSchema_ShowConnectors(t *testing.T) {
	schema, err := ParseResultSchema(ShowConnectorsSchema)
	require.NoError(t, err)

	require.Equal(t, 1, schema.NumFields())
	f := schema.Field(0)
	assert.Equal(t, "connector_name", f.Name)
	assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, f.Type))
}

func TestParseResultSchema_MultiColumn(t *testing.T) {
	schema, err := ParseResultSchema("name,owner,created#string:string:bigint")
	require.NoError(t, err)

	require.Equal(t, 3, schema.NumFields())
	assert.Equal(t, "created", schema.Field(2).Name)
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int64, schema.Field(2).Type))
}

func TestParseResultSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{"no separator", "connector_name"},
		{"empty types", "connector_name#"},
		{"count mismatch", "a,b#string"},
		{"empty column", "a,#string:string"},
		{"unknown type", "a#uniontype"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResultSchema(tt.schema)
			assert.True(t, errors.IsInvalidRequest(err))
		})
	}
}
