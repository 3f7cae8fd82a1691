package validation

import (
	"cmp"
	"slices"
	"strings"

	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var knownTypeNames = specClause("KnownTypeNames", "5.5.1.2", "Fragment-Spread-Type-Existence")

// KnownTypeNamesRule reports references to types the schema does not define.
var KnownTypeNamesRule = QueryRule{
	Name: "KnownTypeNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		schema := ctx.Schema()
		return checkTypeNames(ctx.ASTContext, knownTypeNames,
			func(name string) bool { return schema.Types[name] != nil },
			func() []string { return sortedKeys(schema.Types) })
	},
}

// SDLKnownTypeNamesRule reports references to types neither defined in the document nor
// built in.
var SDLKnownTypeNamesRule = SDLRule{
	Name: "KnownTypeNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		return checkTypeNames(ctx, sdlClause("KnownTypeNames"),
			func(name string) bool { return ctx.TypeDefinition(name) != nil || BuiltinType(name) != nil },
			func() []string {
				names := slices.Clone(ctx.DocumentTypeNames())
				for _, def := range prelude().Definitions {
					names = append(names, def.Name)
				}
				return names
			})
	},
}

func checkTypeNames(ctx *ASTContext, cl clause, known func(string) bool, candidates func() []string) visitor.Visitor {
	return visitor.Funcs{
		visitor.NamedType: {Enter: func(c *visitor.Cursor) visitor.Action {
			t := c.Node.(*ast.Type)
			if known(t.NamedType) {
				return visitor.Continue
			}
			ctx.report(cl, "Unknown type "+quote(t.NamedType)+"."+
				didYouMean(SuggestionList(t.NamedType, candidates())), t)
			return visitor.Continue
		}},
	}
}

var fragmentsOnCompositeTypes = specClause("FragmentsOnCompositeTypes", "5.5.1.3", "Fragments-On-Composite-Types")

// FragmentsOnCompositeTypesRule reports fragments whose type condition is a leaf or input type.
var FragmentsOnCompositeTypesRule = QueryRule{
	Name: "FragmentsOnCompositeTypes",
	Create: func(ctx *QueryContext) visitor.Visitor {
		nonComposite := func(name string) bool {
			def := ctx.Schema().Types[name]
			return def != nil && !def.IsCompositeType()
		}
		return visitor.Funcs{
			visitor.InlineFragment: {Enter: func(c *visitor.Cursor) visitor.Action {
				frag := c.Node.(*ast.InlineFragment)
				if frag.TypeCondition != "" && nonComposite(frag.TypeCondition) {
					ctx.report(fragmentsOnCompositeTypes,
						"Fragment cannot condition on non composite type "+quote(frag.TypeCondition)+".", frag)
				}
				return visitor.Continue
			}},
			visitor.FragmentDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				frag := c.Node.(*ast.FragmentDefinition)
				if nonComposite(frag.TypeCondition) {
					ctx.report(fragmentsOnCompositeTypes,
						"Fragment "+quote(frag.Name)+" cannot condition on non composite type "+quote(frag.TypeCondition)+".", frag)
				}
				return visitor.Continue
			}},
		}
	},
}

var variablesAreInputTypes = specClause("VariablesAreInputTypes", "5.8.2", "Variables-Are-Input-Types")

// VariablesAreInputTypesRule reports variables declared with an output type.
var VariablesAreInputTypesRule = QueryRule{
	Name: "VariablesAreInputTypes",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.VariableDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				def := c.Node.(*ast.VariableDefinition)
				if typeinfo.Lookup(ctx.Schema(), def.Type) != nil && !typeinfo.IsInputType(ctx.Schema(), def.Type) {
					ctx.report(variablesAreInputTypes,
						"Variable "+quote("$"+def.Variable)+" cannot be non-input type "+quote(def.Type.String())+".", def.Type)
				}
				return visitor.Continue
			}},
		}
	},
}

var scalarLeafs = specClause("ScalarLeafs", "5.3.3", "Leaf-Field-Selections")

// ScalarLeafsRule reports selections on leaf fields and missing selections on
// composite fields.
var ScalarLeafsRule = QueryRule{
	Name: "ScalarLeafs",
	Create: func(ctx *QueryContext) visitor.Visitor {
		ti := ctx.TypeInfo()
		return visitor.Funcs{
			visitor.Field: {Enter: func(c *visitor.Cursor) visitor.Action {
				field := c.Node.(*ast.Field)
				t := ti.Type()
				if t == nil {
					return visitor.Continue
				}
				if typeinfo.IsLeafType(ctx.Schema(), t) {
					if len(field.SelectionSet) > 0 {
						ctx.report(scalarLeafs, "Field "+quote(field.Name)+" must not have a selection since type "+
							quote(t.String())+" has no subfields.", field)
					}
				} else if len(field.SelectionSet) == 0 {
					ctx.report(scalarLeafs, "Field "+quote(field.Name)+" of type "+quote(t.String())+
						" must have a selection of subfields. Did you mean "+quote(field.Name+" { ... }")+"?", field)
				}
				return visitor.Continue
			}},
		}
	},
}

var fieldsOnCorrectType = specClause("FieldsOnCorrectType", "5.3.1", "Field-Selections")

// FieldsOnCorrectTypeRule reports fields the parent type does not define, suggesting
// inline fragments on types that do or similarly named fields.
var FieldsOnCorrectTypeRule = QueryRule{
	Name: "FieldsOnCorrectType",
	Create: func(ctx *QueryContext) visitor.Visitor {
		ti := ctx.TypeInfo()
		return visitor.Funcs{
			visitor.Field: {Enter: func(c *visitor.Cursor) visitor.Action {
				parent := ti.ParentType()
				if parent == nil || ti.FieldDef() != nil {
					return visitor.Continue
				}
				field := c.Node.(*ast.Field)
				hint := didYouMeanPrefixed("to use an inline fragment on", suggestedTypeNames(ctx.Schema(), parent, field.Name))
				if hint == "" {
					hint = didYouMean(suggestedFieldNames(parent, field.Name))
				}
				ctx.report(fieldsOnCorrectType,
					"Cannot query field "+quote(field.Name)+" on type "+quote(parent.Name)+"."+hint, field)
				return visitor.Continue
			}},
		}
	},
}

// suggestedTypeNames lists the possible types of an abstract type that define the
// field, interfaces first ordered by how many of those types implement them.
func suggestedTypeNames(schema *ast.Schema, parent *ast.Definition, fieldName string) []string {
	if !parent.IsAbstractType() {
		return nil
	}
	var suggested []*ast.Definition
	usage := map[string]int{}
	for _, possible := range typeinfo.PossibleTypes(schema, parent) {
		if possible.Fields.ForName(fieldName) == nil {
			continue
		}
		if _, ok := usage[possible.Name]; !ok {
			suggested = append(suggested, possible)
		}
		usage[possible.Name] = 1
		for _, name := range possible.Interfaces {
			iface := schema.Types[name]
			if iface == nil || iface.Fields.ForName(fieldName) == nil {
				continue
			}
			if _, ok := usage[name]; !ok {
				suggested = append(suggested, iface)
			}
			usage[name]++
		}
	}

	slices.SortStableFunc(suggested, func(a, b *ast.Definition) int {
		if c := cmp.Compare(usage[b.Name], usage[a.Name]); c != 0 {
			return c
		}
		if a.Kind == ast.Interface && typeinfo.IsSubType(a, b) {
			return -1
		}
		if b.Kind == ast.Interface && typeinfo.IsSubType(b, a) {
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	names := make([]string, len(suggested))
	for i, def := range suggested {
		names[i] = def.Name
	}
	return names
}

func suggestedFieldNames(parent *ast.Definition, fieldName string) []string {
	if parent.Kind != ast.Object && parent.Kind != ast.Interface {
		return nil
	}
	var names []string
	for _, f := range parent.Fields {
		if !strings.HasPrefix(f.Name, "__") {
			names = append(names, f.Name)
		}
	}
	return SuggestionList(fieldName, names)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
