package validation

import (
	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var uniqueVariableNames = specClause("UniqueVariableNames", "5.8.1", "Variable-Uniqueness")

// UniqueVariableNamesRule reports variables declared twice by one operation.
var UniqueVariableNamesRule = QueryRule{
	Name: "UniqueVariableNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				known := map[string]*ast.VariableDefinition{}
				for _, def := range c.Node.(*ast.OperationDefinition).VariableDefinitions {
					if first, ok := known[def.Variable]; ok {
						ctx.report(uniqueVariableNames,
							"There can be only one variable named "+quote("$"+def.Variable)+".", first, def)
					} else {
						known[def.Variable] = def
					}
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

var noUndefinedVariables = specClause("NoUndefinedVariables", "5.8.3", "All-Variable-Uses-Defined")

// NoUndefinedVariablesRule reports variables an operation uses, directly or through
// fragments, without declaring them.
var NoUndefinedVariablesRule = QueryRule{
	Name: "NoUndefinedVariables",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				op := c.Node.(*ast.OperationDefinition)
				for _, usage := range ctx.RecursiveVariableUsages(op) {
					name := usage.Node.Raw
					if op.VariableDefinitions.ForName(name) != nil {
						continue
					}
					msg := "Variable " + quote("$"+name) + " is not defined"
					if op.Name != "" {
						msg += " by operation " + quote(op.Name)
					}
					ctx.report(noUndefinedVariables, msg+".", usage.Node, op)
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

var noUnusedVariables = specClause("NoUnusedVariables", "5.8.4", "All-Variables-Used")

// NoUnusedVariablesRule reports variables an operation declares but never uses.
var NoUnusedVariablesRule = QueryRule{
	Name: "NoUnusedVariables",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				op := c.Node.(*ast.OperationDefinition)
				used := map[string]bool{}
				for _, usage := range ctx.RecursiveVariableUsages(op) {
					used[usage.Node.Raw] = true
				}
				for _, def := range op.VariableDefinitions {
					if used[def.Variable] {
						continue
					}
					msg := "Variable " + quote("$"+def.Variable) + " is never used"
					if op.Name != "" {
						msg += " in operation " + quote(op.Name)
					}
					ctx.report(noUnusedVariables, msg+".", def)
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

var variablesInAllowedPosition = specClause("VariablesInAllowedPosition", "5.8.5", "All-Variable-Usages-are-Allowed")

// VariablesInAllowedPositionRule reports variables used where their declared type does
// not fit. A nullable variable may feed a non-null position when either side has a
// default.
var VariablesInAllowedPositionRule = QueryRule{
	Name: "VariablesInAllowedPosition",
	Create: func(ctx *QueryContext) visitor.Visitor {
		schema := ctx.Schema()
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				op := c.Node.(*ast.OperationDefinition)
				for _, usage := range ctx.RecursiveVariableUsages(op) {
					def := op.VariableDefinitions.ForName(usage.Node.Raw)
					if def == nil || usage.Type == nil {
						continue
					}
					varType := typeinfo.TypeFromAST(schema, def.Type)
					if varType == nil || allowedVariableUsage(schema, varType, def.DefaultValue, usage.Type, usage.DefaultValue) {
						continue
					}
					ctx.report(variablesInAllowedPosition, "Variable "+quote("$"+def.Variable)+" of type "+
						quote(varType.String())+" used in position expecting type "+quote(usage.Type.String())+".",
						def, usage.Node)
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

func allowedVariableUsage(schema *ast.Schema, varType *ast.Type, varDefault *ast.Value, locationType *ast.Type, locationDefault *ast.Value) bool {
	if locationType.NonNull && !varType.NonNull {
		hasVarDefault := varDefault != nil && varDefault.Kind != ast.NullValue
		if !hasVarDefault && locationDefault == nil {
			return false
		}
		return typeinfo.IsTypeSubTypeOf(schema, varType, typeinfo.Nullable(locationType))
	}
	return typeinfo.IsTypeSubTypeOf(schema, varType, locationType)
}
