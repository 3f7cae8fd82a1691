package language

import (
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// PrintValue formats a value literal the way it is written in a document:
// strings quoted, lists as "[a, b]" and objects as "{a: 1}".
func PrintValue(v *ast.Value) string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case ast.Variable:
		return "$" + v.Raw
	case ast.StringValue, ast.BlockValue:
		return strconv.Quote(v.Raw)
	case ast.ListValue:
		items := make([]string, len(v.Children))
		for i, child := range v.Children {
			items[i] = PrintValue(child.Value)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case ast.ObjectValue:
		fields := make([]string, len(v.Children))
		for i, child := range v.Children {
			fields[i] = child.Name + ": " + PrintValue(child.Value)
		}
		return "{" + strings.Join(fields, ", ") + "}"
	default:
		return v.Raw
	}
}
