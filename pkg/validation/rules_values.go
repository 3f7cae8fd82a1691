package validation

import (
	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var valuesOfCorrectType = specClause("ValuesOfCorrectType", "5.6.1", "Values-of-Correct-Type")

// ValuesOfCorrectTypeRule reports literals that cannot be coerced to the input type
// expected where they appear. Variables are checked by VariablesInAllowedPositionRule.
var ValuesOfCorrectTypeRule = QueryRule{
	Name: "ValuesOfCorrectType",
	Create: func(ctx *QueryContext) visitor.Visitor {
		v := &correctValues{ctx: ctx, ti: ctx.TypeInfo(), schema: ctx.Schema()}
		leaf := visitor.KindFuncs{Enter: v.leaf}
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				v.variables = map[string]*ast.VariableDefinition{}
				for _, def := range c.Node.(*ast.OperationDefinition).VariableDefinitions {
					v.variables[def.Variable] = def
				}
				return visitor.Continue
			}},
			visitor.ListValue:    {Enter: v.list},
			visitor.ObjectValue:  {Enter: v.object},
			visitor.ObjectField:  {Enter: v.objectField},
			visitor.NullValue:    {Enter: v.null},
			visitor.EnumValue:    leaf,
			visitor.IntValue:     leaf,
			visitor.FloatValue:   leaf,
			visitor.StringValue:  leaf,
			visitor.BooleanValue: leaf,
		}
	},
}

type correctValues struct {
	ctx       *QueryContext
	ti        *typeinfo.TypeInfo
	schema    *ast.Schema
	variables map[string]*ast.VariableDefinition
}

func (v *correctValues) list(c *visitor.Cursor) visitor.Action {
	if !typeinfo.IsList(v.ti.ParentInputType()) {
		v.check(c.Node.(*ast.Value))
		return visitor.Skip
	}
	return visitor.Continue
}

func (v *correctValues) object(c *visitor.Cursor) visitor.Action {
	value := c.Node.(*ast.Value)
	def := typeinfo.Lookup(v.schema, v.ti.InputType())
	if def == nil || def.Kind != ast.InputObject {
		v.check(value)
		return visitor.Skip
	}

	for _, field := range def.Fields {
		if field.Type.NonNull && field.DefaultValue == nil && value.Children.ForName(field.Name) == nil {
			v.ctx.report(valuesOfCorrectType, "Field "+quote(def.Name+"."+field.Name)+" of required type "+
				quote(field.Type.String())+" was not provided.", value)
		}
	}
	if def.Directives.ForName("oneOf") != nil {
		v.oneOf(value, def)
	}
	return visitor.Continue
}

// oneOf checks that a @oneOf input object literal sets exactly one non-null field.
func (v *correctValues) oneOf(value *ast.Value, def *ast.Definition) {
	if len(value.Children) != 1 {
		v.ctx.report(valuesOfCorrectType, "OneOf Input Object "+quote(def.Name)+" must specify exactly one key.", value)
		return
	}
	field := value.Children[0]
	switch {
	case field.Value == nil || field.Value.Kind == ast.NullValue:
		v.ctx.report(valuesOfCorrectType, "Field "+quote(def.Name+"."+field.Name)+" must be non-null.", value)
	case field.Value.Kind == ast.Variable:
		if varDef := v.variables[field.Value.Raw]; varDef != nil && !varDef.Type.NonNull {
			v.ctx.report(valuesOfCorrectType, "Variable "+quote("$"+field.Value.Raw)+
				" must be non-nullable to be used for OneOf Input Object "+quote(def.Name)+".", value)
		}
	}
}

func (v *correctValues) objectField(c *visitor.Cursor) visitor.Action {
	parent := typeinfo.Lookup(v.schema, v.ti.ParentInputType())
	if v.ti.InputType() != nil || parent == nil || parent.Kind != ast.InputObject {
		return visitor.Continue
	}
	field := c.Node.(*ast.ChildValue)
	names := make([]string, len(parent.Fields))
	for i, f := range parent.Fields {
		names[i] = f.Name
	}
	v.ctx.report(valuesOfCorrectType, "Field "+quote(field.Name)+" is not defined by type "+quote(parent.Name)+"."+
		didYouMean(SuggestionList(field.Name, names)), field)
	return visitor.Continue
}

func (v *correctValues) null(c *visitor.Cursor) visitor.Action {
	if t := v.ti.InputType(); t != nil && t.NonNull {
		v.ctx.report(valuesOfCorrectType, "Expected value of type "+quote(t.String())+", found null.", c.Node)
	}
	return visitor.Continue
}

func (v *correctValues) leaf(c *visitor.Cursor) visitor.Action {
	v.check(c.Node.(*ast.Value))
	return visitor.Continue
}

// check reports value when it cannot be coerced to the current input type.
func (v *correctValues) check(value *ast.Value) {
	locationType := v.ti.InputType()
	if locationType == nil {
		return
	}
	def := typeinfo.Lookup(v.schema, locationType)
	if def == nil {
		return
	}
	expected := "Expected value of type " + quote(locationType.String()) + ", found " + language.PrintValue(value)
	if !def.IsLeafType() {
		v.ctx.report(valuesOfCorrectType, expected+".", value)
		return
	}

	if def.Kind == ast.Enum {
		v.checkEnum(value, def)
		return
	}
	if _, err := v.ctx.Scalars().Parse(def.Name, value); err != nil {
		v.ctx.report(valuesOfCorrectType, expected+"; "+err.Error(), value)
	}
}

func (v *correctValues) checkEnum(value *ast.Value, def *ast.Definition) {
	printed := language.PrintValue(value)
	names := make([]string, len(def.EnumValues))
	for i, ev := range def.EnumValues {
		names[i] = ev.Name
	}
	switch {
	case value.Kind != ast.EnumValue:
		v.ctx.report(valuesOfCorrectType, "Enum "+quote(def.Name)+" cannot represent non-enum value: "+printed+"."+
			didYouMeanPrefixed("the enum value", SuggestionList(printed, names)), value)
	case def.EnumValues.ForName(value.Raw) == nil:
		v.ctx.report(valuesOfCorrectType, "Value "+quote(printed)+" does not exist in "+quote(def.Name)+" enum."+
			didYouMeanPrefixed("the enum value", SuggestionList(printed, names)), value)
	}
}

var uniqueInputFieldNames = specClause("UniqueInputFieldNames", "5.6.3", "Input-Object-Field-Uniqueness")

// UniqueInputFieldNamesRule reports an input object literal setting a field twice.
var UniqueInputFieldNamesRule = QueryRule{
	Name: "UniqueInputFieldNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return checkUniqueInputFields(ctx.ASTContext, uniqueInputFieldNames)
	},
}

// SDLUniqueInputFieldNamesRule is UniqueInputFieldNamesRule for default values and
// directive arguments in type-system documents.
var SDLUniqueInputFieldNamesRule = SDLRule{
	Name: "UniqueInputFieldNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		return checkUniqueInputFields(ctx, sdlClause("UniqueInputFieldNames"))
	},
}

func checkUniqueInputFields(ctx *ASTContext, cl clause) visitor.Visitor {
	return visitor.Funcs{
		visitor.ObjectValue: {Enter: func(c *visitor.Cursor) visitor.Action {
			known := map[string]*ast.ChildValue{}
			for _, field := range c.Node.(*ast.Value).Children {
				if first, ok := known[field.Name]; ok {
					ctx.report(cl, "There can be only one input field named "+quote(field.Name)+".", first, field)
				} else {
					known[field.Name] = field
				}
			}
			return visitor.Continue
		}},
	}
}
