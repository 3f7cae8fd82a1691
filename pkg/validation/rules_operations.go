package validation

import (
	"strings"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var executableDefinitions = specClause("ExecutableDefinitions", "5.1.1", "Executable-Definitions")

// ExecutableDefinitionsRule reports type-system definitions in an executable document.
var ExecutableDefinitionsRule = QueryRule{
	Name: "ExecutableDefinitions",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.Document: {Enter: func(c *visitor.Cursor) visitor.Action {
				for _, def := range c.Node.(*language.Document).Definitions {
					if def.Kind.IsExecutable() {
						continue
					}
					name := def.Name()
					if def.Kind == language.SchemaDefinition || def.Kind == language.SchemaExtension {
						name = "schema"
					}
					ctx.report(executableDefinitions,
						"The "+quote(name)+" definition is not executable.", def.Node())
				}
				return visitor.Skip
			}},
		}
	},
}

var uniqueOperationNames = specClause("UniqueOperationNames", "5.2.1.1", "Operation-Name-Uniqueness")

// UniqueOperationNamesRule reports operations sharing a name.
var UniqueOperationNamesRule = QueryRule{
	Name: "UniqueOperationNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		known := map[string]*ast.OperationDefinition{}
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				op := c.Node.(*ast.OperationDefinition)
				if op.Name == "" {
					return visitor.Skip
				}
				if first, ok := known[op.Name]; ok {
					ctx.report(uniqueOperationNames,
						"There can be only one operation named "+quote(op.Name)+".", first, op)
				} else {
					known[op.Name] = op
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

var loneAnonymousOperation = specClause("LoneAnonymousOperation", "5.2.2.1", "Lone-Anonymous-Operation")

// LoneAnonymousOperationRule reports an anonymous operation that is not alone.
var LoneAnonymousOperationRule = QueryRule{
	Name: "LoneAnonymousOperation",
	Create: func(ctx *QueryContext) visitor.Visitor {
		operations := 0
		return visitor.Funcs{
			visitor.Document: {Enter: func(c *visitor.Cursor) visitor.Action {
				operations = len(c.Node.(*language.Document).Query.Operations)
				return visitor.Continue
			}},
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				if op := c.Node.(*ast.OperationDefinition); op.Name == "" && operations > 1 {
					ctx.report(loneAnonymousOperation,
						"This anonymous operation must be the only defined operation.", op)
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

var singleFieldSubscriptions = specClause("SingleFieldSubscriptions", "5.2.3.1", "Single-root-field")

// SingleFieldSubscriptionsRule reports subscriptions selecting more than one root field,
// or __schema or __type, following fragments. __typename next to another field is ignored.
var SingleFieldSubscriptionsRule = QueryRule{
	Name: "SingleFieldSubscriptions",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				op := c.Node.(*ast.OperationDefinition)
				if op.Operation != ast.Subscription {
					return visitor.Skip
				}
				root := typeinfo.RootType(ctx.Schema(), ast.Subscription)
				if root == nil {
					return visitor.Skip
				}

				label := "Anonymous Subscription"
				if op.Name != "" {
					label = "Subscription " + quote(op.Name)
				}

				fields := withoutTypename(collectRootFields(ctx, root, op.SelectionSet))
				for _, group := range fields[min(1, len(fields)):] {
					ctx.report(singleFieldSubscriptions,
						label+" must select only one top level field.", group[0])
				}
				for _, group := range fields {
					if name := group[0].Name; name != "__typename" && strings.HasPrefix(name, "__") {
						ctx.report(singleFieldSubscriptions,
							label+" must not select an introspection top level field.", anySlice(group)...)
					}
				}
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: skip},
		}
	},
}

// withoutTypename drops __typename selections when another root field is selected.
// A lone __typename counts as the one field.
func withoutTypename(groups [][]*ast.Field) [][]*ast.Field {
	var kept [][]*ast.Field
	for _, group := range groups {
		if group[0].Name != "__typename" {
			kept = append(kept, group)
		}
	}
	if len(kept) == 0 {
		return groups
	}
	return kept
}

// collectRootFields groups the fields selected on root by response key, in order of
// first appearance. Fragments that cannot apply to root and fields excluded with a
// literal @skip or @include are left out.
func collectRootFields(ctx *QueryContext, root *ast.Definition, set ast.SelectionSet) [][]*ast.Field {
	var groups [][]*ast.Field
	index := map[string]int{}
	visited := map[string]bool{}

	var collect func(set ast.SelectionSet)
	collect = func(set ast.SelectionSet) {
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.Field:
				if !included(sel.Directives) {
					continue
				}
				key := sel.Alias
				if key == "" {
					key = sel.Name
				}
				if i, ok := index[key]; ok {
					groups[i] = append(groups[i], sel)
				} else {
					index[key] = len(groups)
					groups = append(groups, []*ast.Field{sel})
				}
			case *ast.InlineFragment:
				if included(sel.Directives) && conditionMatches(ctx.Schema(), sel.TypeCondition, root) {
					collect(sel.SelectionSet)
				}
			case *ast.FragmentSpread:
				if visited[sel.Name] || !included(sel.Directives) {
					continue
				}
				visited[sel.Name] = true
				frag := ctx.Fragment(sel.Name)
				if frag != nil && conditionMatches(ctx.Schema(), frag.TypeCondition, root) {
					collect(frag.SelectionSet)
				}
			}
		}
	}
	collect(set)
	return groups
}

func included(directives ast.DirectiveList) bool {
	if d := directives.ForName("skip"); d != nil && literalBool(d, "if") == "true" {
		return false
	}
	if d := directives.ForName("include"); d != nil && literalBool(d, "if") == "false" {
		return false
	}
	return true
}

func literalBool(d *ast.Directive, arg string) string {
	if a := d.Arguments.ForName(arg); a != nil && a.Value != nil && a.Value.Kind == ast.BooleanValue {
		return a.Value.Raw
	}
	return ""
}

func conditionMatches(schema *ast.Schema, condition string, object *ast.Definition) bool {
	if condition == "" || condition == object.Name {
		return true
	}
	conditionType := schema.Types[condition]
	return conditionType != nil && conditionType.IsAbstractType() && typeinfo.IsSubType(conditionType, object)
}

func skip(*visitor.Cursor) visitor.Action { return visitor.Skip }

func anySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
