package scalars_test

import (
	"testing"

	"github.com/samwightt/gqlvet/pkg/scalars"
	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
)

func lit(kind ast.ValueKind, raw string) *ast.Value {
	return &ast.Value{Kind: kind, Raw: raw}
}

func TestDefault(t *testing.T) {
	r := scalars.Default()

	tests := []struct {
		name    string
		scalar  string
		value   *ast.Value
		want    any
		wantErr string
	}{
		{name: "int", scalar: "Int", value: lit(ast.IntValue, "42"), want: int32(42)},
		{name: "int overflow", scalar: "Int", value: lit(ast.IntValue, "2147483648"),
			wantErr: "Int cannot represent non 32-bit signed integer value: 2147483648"},
		{name: "int from string", scalar: "Int", value: lit(ast.StringValue, "42"),
			wantErr: `Int cannot represent non-integer value: "42"`},
		{name: "float from int", scalar: "Float", value: lit(ast.IntValue, "1"), want: float64(1)},
		{name: "float from enum", scalar: "Float", value: lit(ast.EnumValue, "NAN"),
			wantErr: "Float cannot represent non numeric value: NAN"},
		{name: "string", scalar: "String", value: lit(ast.BlockValue, "text"), want: "text"},
		{name: "string from bool", scalar: "String", value: lit(ast.BooleanValue, "true"),
			wantErr: "String cannot represent a non string value: true"},
		{name: "boolean", scalar: "Boolean", value: lit(ast.BooleanValue, "false"), want: false},
		{name: "boolean from int", scalar: "Boolean", value: lit(ast.IntValue, "1"),
			wantErr: "Boolean cannot represent a non boolean value: 1"},
		{name: "id from int", scalar: "ID", value: lit(ast.IntValue, "7"), want: "7"},
		{name: "id from float", scalar: "ID", value: lit(ast.FloatValue, "1.5"),
			wantErr: "ID cannot represent a non-string and non-integer value: 1.5"},
		{name: "list for scalar", scalar: "Int", value: &ast.Value{Kind: ast.ListValue, Children: ast.ChildValueList{
			{Value: lit(ast.IntValue, "1")}, {Value: lit(ast.IntValue, "2")},
		}}, wantErr: "Int cannot represent non-integer value: [1, 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Parse(tt.scalar, tt.value)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustomScalars(t *testing.T) {
	r := scalars.Default()

	got, err := r.Parse("DateTime", lit(ast.IntValue, "12"))
	assert.NoError(t, err)
	assert.Equal(t, "12", got)

	r.RegisterString("DateTime")
	assert.True(t, r.Has("DateTime"))
	assert.Equal(t, 6, r.Len())
	_, err = r.Parse("DateTime", lit(ast.IntValue, "12"))
	assert.Error(t, err)
}
