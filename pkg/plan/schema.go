package plan

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/TFMV/ddlplan/pkg/errors"
)

// ShowConnectorsSchema is the result layout of SHOW CONNECTORS: column
// names, then '#', then their types.
const ShowConnectorsSchema = "connector_name#string"

var schemaTypes = map[string]arrow.DataType{
	"string":    arrow.BinaryTypes.String,
	"varchar":   arrow.BinaryTypes.String,
	"binary":    arrow.BinaryTypes.Binary,
	"boolean":   arrow.FixedWidthTypes.Boolean,
	"tinyint":   arrow.PrimitiveTypes.Int8,
	"smallint":  arrow.PrimitiveTypes.Int16,
	"int":       arrow.PrimitiveTypes.Int32,
	"bigint":    arrow.PrimitiveTypes.Int64,
	"float":     arrow.PrimitiveTypes.Float32,
	"double":    arrow.PrimitiveTypes.Float64,
	"date":      arrow.FixedWidthTypes.Date32,
	"timestamp": arrow.FixedWidthTypes.Timestamp_us,
}

// ParseResultSchema converts a "name1,name2#type1:type2" schema string into
// an Arrow schema.
func ParseResultSchema(s string) (*arrow.Schema, error) {
	namesPart, typesPart, ok := strings.Cut(s, "#")
	if !ok || namesPart == "" || typesPart == "" {
		return nil, errors.New(errors.CodeInvalidRequest, "malformed result schema").
			WithDetail("schema", s)
	}

	names := strings.Split(namesPart, ",")
	types := strings.Split(typesPart, ":")
	if len(names) != len(types) {
		return nil, errors.New(errors.CodeInvalidRequest, "result schema column and type counts differ").
			WithDetail("schema", s)
	}

	fields := make([]arrow.Field, 0, len(names))
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.New(errors.CodeInvalidRequest, "empty column name in result schema").
				WithDetail("schema", s)
		}
		typeName := strings.ToLower(strings.TrimSpace(types[i]))
		dt, ok := schemaTypes[typeName]
		if !ok {
			return nil, errors.New(errors.CodeInvalidRequest, "unsupported column type in result schema").
				WithDetail("column", name).
				WithDetail("type", typeName)
		}
		fields = append(fields, arrow.Field{Name: name, Type: dt, Nullable: true})
	}

	return arrow.NewSchema(fields, nil), nil
}
