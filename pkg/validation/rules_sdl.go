package validation

import (
	"strings"

	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

// LoneSchemaDefinitionRule reports every schema definition after the first.
var LoneSchemaDefinitionRule = SDLRule{
	Name: "LoneSchemaDefinition",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("LoneSchemaDefinition")
		count := 0
		return visitor.Funcs{
			visitor.SchemaDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				if count > 0 {
					ctx.report(cl, "Must provide only one schema definition.", c.Node)
				}
				count++
				return visitor.Skip
			}},
		}
	},
}

// UniqueOperationTypesRule reports a root operation type set twice across the schema
// definition and its extensions.
var UniqueOperationTypesRule = SDLRule{
	Name: "UniqueOperationTypes",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueOperationTypes")
		defined := map[ast.Operation]*ast.OperationTypeDefinition{}
		check := func(c *visitor.Cursor) visitor.Action {
			for _, opType := range c.Node.(*ast.SchemaDefinition).OperationTypes {
				if first, ok := defined[opType.Operation]; ok {
					ctx.report(cl, "There can be only one "+quote(string(opType.Operation))+" type in schema.", first, opType)
				} else {
					defined[opType.Operation] = opType
				}
			}
			return visitor.Skip
		}
		return visitor.Funcs{
			visitor.SchemaDefinition: {Enter: check},
			visitor.SchemaExtension:  {Enter: check},
		}
	},
}

// typeDefinitionKinds and typeExtensionKinds list the walk kinds of named types.
var (
	typeDefinitionKinds = []visitor.Kind{
		visitor.ScalarTypeDefinition, visitor.ObjectTypeDefinition, visitor.InterfaceTypeDefinition,
		visitor.UnionTypeDefinition, visitor.EnumTypeDefinition, visitor.InputObjectTypeDefinition,
	}
	typeExtensionKinds = []visitor.Kind{
		visitor.ScalarTypeExtension, visitor.ObjectTypeExtension, visitor.InterfaceTypeExtension,
		visitor.UnionTypeExtension, visitor.EnumTypeExtension, visitor.InputObjectTypeExtension,
	}
)

// onKinds registers the same callbacks for several kinds.
func onKinds(funcs visitor.KindFuncs, kinds ...visitor.Kind) visitor.Funcs {
	out := make(visitor.Funcs, len(kinds))
	for _, k := range kinds {
		out[k] = funcs
	}
	return out
}

// UniqueTypeNamesRule reports types defined twice.
var UniqueTypeNamesRule = SDLRule{
	Name: "UniqueTypeNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueTypeNames")
		known := map[string]*ast.Definition{}
		return onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			def := c.Node.(*ast.Definition)
			if first, ok := known[def.Name]; ok {
				ctx.report(cl, "There can be only one type named "+quote(def.Name)+".", first, def)
			} else {
				known[def.Name] = def
			}
			return visitor.Skip
		}}, typeDefinitionKinds...)
	},
}

// UniqueEnumValueNamesRule reports enum values defined twice for one enum, counting
// its extensions.
var UniqueEnumValueNamesRule = SDLRule{
	Name: "UniqueEnumValueNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueEnumValueNames")
		known := map[string]map[string]*ast.EnumValueDefinition{}
		return onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			def := c.Node.(*ast.Definition)
			values := known[def.Name]
			if values == nil {
				values = map[string]*ast.EnumValueDefinition{}
				known[def.Name] = values
			}
			for _, value := range def.EnumValues {
				if first, ok := values[value.Name]; ok {
					ctx.report(cl, "Enum value "+quote(def.Name+"."+value.Name)+" can only be defined once.", first, value)
				} else {
					values[value.Name] = value
				}
			}
			return visitor.Skip
		}}, visitor.EnumTypeDefinition, visitor.EnumTypeExtension)
	},
}

// UniqueFieldDefinitionNamesRule reports fields defined twice for one type, counting
// its extensions.
var UniqueFieldDefinitionNamesRule = SDLRule{
	Name: "UniqueFieldDefinitionNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueFieldDefinitionNames")
		known := map[string]map[string]*ast.FieldDefinition{}
		return onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			def := c.Node.(*ast.Definition)
			fields := known[def.Name]
			if fields == nil {
				fields = map[string]*ast.FieldDefinition{}
				known[def.Name] = fields
			}
			for _, field := range def.Fields {
				if first, ok := fields[field.Name]; ok {
					ctx.report(cl, "Field "+quote(def.Name+"."+field.Name)+" can only be defined once.", first, field)
				} else {
					fields[field.Name] = field
				}
			}
			return visitor.Skip
		}},
			visitor.ObjectTypeDefinition, visitor.ObjectTypeExtension,
			visitor.InterfaceTypeDefinition, visitor.InterfaceTypeExtension,
			visitor.InputObjectTypeDefinition, visitor.InputObjectTypeExtension)
	},
}

// UniqueArgumentDefinitionNamesRule reports arguments defined twice for one field or
// directive definition.
var UniqueArgumentDefinitionNamesRule = SDLRule{
	Name: "UniqueArgumentDefinitionNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueArgumentDefinitionNames")
		check := func(owner string, args ast.ArgumentDefinitionList) {
			known := map[string]*ast.ArgumentDefinition{}
			for _, arg := range args {
				if first, ok := known[arg.Name]; ok {
					ctx.report(cl, "Argument "+quote(owner+"("+arg.Name+":)")+" can only be defined once.", first, arg)
				} else {
					known[arg.Name] = arg
				}
			}
		}
		funcs := onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			def := c.Node.(*ast.Definition)
			for _, field := range def.Fields {
				check(def.Name+"."+field.Name, field.Arguments)
			}
			return visitor.Skip
		}},
			visitor.ObjectTypeDefinition, visitor.ObjectTypeExtension,
			visitor.InterfaceTypeDefinition, visitor.InterfaceTypeExtension)
		funcs[visitor.DirectiveDefinition] = visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			dir := c.Node.(*ast.DirectiveDefinition)
			check("@"+dir.Name, dir.Arguments)
			return visitor.Skip
		}}
		return funcs
	},
}

// UniqueDirectiveNamesRule reports directives defined twice.
var UniqueDirectiveNamesRule = SDLRule{
	Name: "UniqueDirectiveNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueDirectiveNames")
		known := map[string]*ast.DirectiveDefinition{}
		return visitor.Funcs{
			visitor.DirectiveDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				dir := c.Node.(*ast.DirectiveDefinition)
				if first, ok := known[dir.Name]; ok {
					ctx.report(cl, "There can be only one directive named "+quote("@"+dir.Name)+".", first, dir)
				} else {
					known[dir.Name] = dir
				}
				return visitor.Skip
			}},
		}
	},
}

// PossibleTypeExtensionsRule reports extensions of undefined types and extensions whose
// kind differs from the extended type. Built-in types count as defined.
var PossibleTypeExtensionsRule = SDLRule{
	Name: "PossibleTypeExtensions",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("PossibleTypeExtensions")
		return onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			ext := c.Node.(*ast.Definition)
			defined := ctx.TypeDefinition(ext.Name)
			existing := defined
			if existing == nil {
				existing = BuiltinType(ext.Name)
			}

			switch {
			case existing == nil:
				names := append([]string(nil), ctx.DocumentTypeNames()...)
				for _, def := range prelude().Definitions {
					names = append(names, def.Name)
				}
				ctx.report(cl, "Cannot extend type "+quote(ext.Name)+" because it is not defined."+
					didYouMean(SuggestionList(ext.Name, names)), ext)
			case existing.Kind != ext.Kind:
				msg := "Cannot extend non-" + kindName(ext.Kind) + " type " + quote(ext.Name) + "."
				if defined != nil {
					ctx.report(cl, msg, defined, ext)
				} else {
					ctx.report(cl, msg, ext)
				}
			}
			return visitor.Skip
		}}, typeExtensionKinds...)
	},
}

func kindName(kind ast.DefinitionKind) string {
	switch kind {
	case ast.Scalar:
		return "scalar"
	case ast.Object:
		return "object"
	case ast.Interface:
		return "interface"
	case ast.Union:
		return "union"
	case ast.Enum:
		return "enum"
	case ast.InputObject:
		return "input object"
	}
	return strings.ToLower(string(kind))
}

// ReservedNamesRule reports type-system names starting with "__", which only
// introspection may use.
var ReservedNamesRule = SDLRule{
	Name: "ReservedNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("ReservedNames")
		check := func(name string, node any) {
			if strings.HasPrefix(name, "__") {
				ctx.report(cl, "Name "+quote(name)+" must not begin with "+quote("__")+
					", which is reserved by GraphQL introspection.", node)
			}
		}
		funcs := onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			def := c.Node.(*ast.Definition)
			check(def.Name, def)
			return visitor.Continue
		}}, typeDefinitionKinds...)
		funcs[visitor.FieldDefinition] = visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			field := c.Node.(*ast.FieldDefinition)
			check(field.Name, field)
			return visitor.Continue
		}}
		funcs[visitor.InputFieldDefinition] = funcs[visitor.FieldDefinition]
		funcs[visitor.ArgumentDefinition] = visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			arg := c.Node.(*ast.ArgumentDefinition)
			check(arg.Name, arg)
			return visitor.Skip
		}}
		funcs[visitor.EnumValueDefinition] = visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			value := c.Node.(*ast.EnumValueDefinition)
			check(value.Name, value)
			return visitor.Skip
		}}
		funcs[visitor.DirectiveDefinition] = visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
			dir := c.Node.(*ast.DirectiveDefinition)
			check(dir.Name, dir)
			return visitor.Continue
		}}
		funcs[visitor.OperationDefinition] = visitor.KindFuncs{Enter: skip}
		funcs[visitor.FragmentDefinition] = visitor.KindFuncs{Enter: skip}
		return funcs
	},
}
