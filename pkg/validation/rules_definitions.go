package validation

import (
	"slices"
	"strings"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

// eachDocumentType calls fn once per type defined in the document, in order, with the
// type as merged with its extensions and the node of its first definition.
func eachDocumentType(ctx *ASTContext, fn func(merged, def *ast.Definition)) visitor.Visitor {
	return visitor.Funcs{
		visitor.Document: {Enter: func(c *visitor.Cursor) visitor.Action {
			types := ctx.TypeSchema().Types
			for _, name := range ctx.DocumentTypeNames() {
				fn(types[name], ctx.TypeDefinition(name))
			}
			return visitor.Skip
		}},
	}
}

// HasEnumValueDefinedRule reports enums without values.
var HasEnumValueDefinedRule = SDLRule{
	Name: "HasEnumValueDefined",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("HasEnumValueDefined")
		return eachDocumentType(ctx, func(merged, def *ast.Definition) {
			if merged.Kind == ast.Enum && len(merged.EnumValues) == 0 {
				ctx.report(cl, "Enum type "+quote(merged.Name)+" must define one or more values.", def)
			}
		})
	},
}

// HasFieldDefinedRule reports object, interface and input object types without fields.
var HasFieldDefinedRule = SDLRule{
	Name: "HasFieldDefined",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("HasFieldDefined")
		return eachDocumentType(ctx, func(merged, def *ast.Definition) {
			if len(merged.Fields) > 0 {
				return
			}
			var label string
			switch merged.Kind {
			case ast.Object:
				label = "Object type"
			case ast.Interface:
				label = "Interface type"
			case ast.InputObject:
				label = "Input Object type"
			default:
				return
			}
			ctx.report(cl, label+" "+quote(merged.Name)+" must define one or more fields.", def)
		})
	},
}

// HasMemberDefinedRule reports unions without member types.
var HasMemberDefinedRule = SDLRule{
	Name: "HasMemberDefined",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("HasMemberDefined")
		return eachDocumentType(ctx, func(merged, def *ast.Definition) {
			if merged.Kind == ast.Union && len(merged.Types) == 0 {
				ctx.report(cl, "Union type "+quote(merged.Name)+" must define one or more member types.", def)
			}
		})
	},
}

// UniqueInterfaceImplementationsRule reports an interface listed twice by one type,
// counting its extensions.
var UniqueInterfaceImplementationsRule = SDLRule{
	Name: "UniqueInterfaceImplementations",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueInterfaceImplementations")
		return uniqueMembers(ctx, func(def *ast.Definition) []string { return def.Interfaces },
			func(def *ast.Definition, name string, first, dup *ast.Position) {
				ctx.report(cl, "Type "+quote(def.Name)+" can only implement "+quote(name)+" once.", first, dup)
			},
			visitor.ObjectTypeDefinition, visitor.ObjectTypeExtension,
			visitor.InterfaceTypeDefinition, visitor.InterfaceTypeExtension)
	},
}

// UniqueUnionMembersRule reports a member listed twice by one union, counting its
// extensions.
var UniqueUnionMembersRule = SDLRule{
	Name: "UniqueUnionMembers",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("UniqueUnionMembers")
		return uniqueMembers(ctx, func(def *ast.Definition) []string { return def.Types },
			func(def *ast.Definition, name string, first, dup *ast.Position) {
				ctx.report(cl, "Union type "+quote(def.Name)+" can only include type "+quote(name)+" once.", first, dup)
			},
			visitor.UnionTypeDefinition, visitor.UnionTypeExtension)
	},
}

// uniqueMembers tracks, per type name, where each member was first listed across the
// definition and its extensions.
func uniqueMembers(ctx *ASTContext, members func(*ast.Definition) []string, report func(def *ast.Definition, name string, first, dup *ast.Position), kinds ...visitor.Kind) visitor.Visitor {
	known := map[string]map[string]*ast.Position{}
	return onKinds(visitor.KindFuncs{Enter: func(c *visitor.Cursor) visitor.Action {
		def := c.Node.(*ast.Definition)
		seen := known[def.Name]
		if seen == nil {
			seen = map[string]*ast.Position{}
			known[def.Name] = seen
		}
		for i, name := range members(def) {
			pos := ctx.Document().MemberPosition(def, i)
			if first, ok := seen[name]; ok {
				report(def, name, first, pos)
			} else {
				seen[name] = pos
			}
		}
		return visitor.Skip
	}}, kinds...)
}

// ValidObjectImplementsRule reports objects and interfaces that do not satisfy the
// interfaces they implement: missing fields or arguments, incompatible types, extra
// required arguments, missing transitive interfaces, and non-interface implementations.
var ValidObjectImplementsRule = SDLRule{
	Name: "ValidObjectImplements",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("ValidObjectImplements")
		schema := ctx.TypeSchema()
		return eachDocumentType(ctx, func(merged, def *ast.Definition) {
			if merged.Kind != ast.Object && merged.Kind != ast.Interface {
				return
			}
			seen := map[string]bool{}
			for _, name := range merged.Interfaces {
				if seen[name] {
					continue
				}
				seen[name] = true
				iface := schema.Types[name]
				switch {
				case iface == nil:
					// Unknown names are reported by KnownTypeNames.
				case iface.Kind != ast.Interface:
					ctx.report(cl, "Type "+quote(merged.Name)+" must only implement Interface types, it cannot implement "+
						quote(name)+".", implementsNodes(ctx, merged.Name)...)
				case iface.Name == merged.Name:
					ctx.report(cl, "Type "+quote(merged.Name)+" cannot implement itself because it would create a circular reference.",
						implementsNodes(ctx, merged.Name)...)
				default:
					checkAncestors(ctx, cl, merged, iface)
					checkImplements(ctx, cl, schema, merged, iface)
				}
			}
		})
	},
}

// implementsNodes returns the definition and extensions of name that list interfaces.
func implementsNodes(ctx *ASTContext, name string) []any {
	var nodes []any
	if def := ctx.TypeDefinition(name); def != nil && len(def.Interfaces) > 0 {
		nodes = append(nodes, def)
	}
	for _, ext := range ctx.TypeExtensions(name) {
		if len(ext.Interfaces) > 0 {
			nodes = append(nodes, ext)
		}
	}
	return nodes
}

func checkAncestors(ctx *ASTContext, cl clause, t, iface *ast.Definition) {
	for _, transitive := range iface.Interfaces {
		if slices.Contains(t.Interfaces, transitive) {
			continue
		}
		nodes := append(implementsNodes(ctx, iface.Name), implementsNodes(ctx, t.Name)...)
		if transitive == t.Name {
			ctx.report(cl, "Type "+quote(t.Name)+" cannot implement "+quote(iface.Name)+
				" because it would create a circular reference.", nodes...)
		} else {
			ctx.report(cl, "Type "+quote(t.Name)+" must implement "+quote(transitive)+
				" because it is implemented by "+quote(iface.Name)+".", nodes...)
		}
	}
}

func checkImplements(ctx *ASTContext, cl clause, schema *ast.Schema, t, iface *ast.Definition) {
	for _, ifaceField := range iface.Fields {
		field := t.Fields.ForName(ifaceField.Name)
		if field == nil {
			nodes := []any{ifaceField, ctx.TypeDefinition(t.Name)}
			for _, ext := range ctx.TypeExtensions(t.Name) {
				nodes = append(nodes, ext)
			}
			ctx.report(cl, "Interface field "+quote(iface.Name+"."+ifaceField.Name)+" expected but "+
				quote(t.Name)+" does not provide it.", nodes...)
			continue
		}

		if !typeinfo.IsTypeSubTypeOf(schema, field.Type, ifaceField.Type) {
			ctx.report(cl, "Interface field "+quote(iface.Name+"."+ifaceField.Name)+" expects type "+
				quote(ifaceField.Type.String())+" but "+quote(t.Name+"."+field.Name)+" is type "+
				quote(field.Type.String())+".", ifaceField.Type, field.Type)
		}

		for _, ifaceArg := range ifaceField.Arguments {
			arg := field.Arguments.ForName(ifaceArg.Name)
			if arg == nil {
				ctx.report(cl, "Interface field argument "+quote(iface.Name+"."+ifaceField.Name+"("+ifaceArg.Name+":)")+
					" expected but "+quote(t.Name+"."+field.Name)+" does not provide it.", ifaceArg, field)
				continue
			}
			if !typeinfo.Equal(ifaceArg.Type, arg.Type) {
				ctx.report(cl, "Interface field argument "+quote(iface.Name+"."+ifaceField.Name+"("+ifaceArg.Name+":)")+
					" expects type "+quote(ifaceArg.Type.String())+" but "+
					quote(t.Name+"."+field.Name+"("+arg.Name+":)")+" is type "+quote(arg.Type.String())+".",
					ifaceArg.Type, arg.Type)
			}
		}

		for _, arg := range field.Arguments {
			if arg.Type.NonNull && arg.DefaultValue == nil && ifaceField.Arguments.ForName(arg.Name) == nil {
				ctx.report(cl, "Object field "+quote(t.Name+"."+field.Name)+" includes required argument "+
					quote(arg.Name)+" that is missing from the Interface field "+quote(iface.Name+"."+ifaceField.Name)+".",
					arg, ifaceField)
			}
		}
	}
}

// InputObjectNoCircularReferenceRule reports input objects that reach themselves
// through non-null, non-list fields, which no finite value could satisfy.
var InputObjectNoCircularReferenceRule = SDLRule{
	Name: "InputObjectNoCircularReference",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("InputObjectNoCircularReference")
		schema := ctx.TypeSchema()
		visited := map[string]bool{}
		var fieldPath []*ast.FieldDefinition
		pathIndex := map[string]int{}

		var detect func(input *ast.Definition)
		detect = func(input *ast.Definition) {
			if visited[input.Name] {
				return
			}
			visited[input.Name] = true
			pathIndex[input.Name] = len(fieldPath)

			for _, field := range input.Fields {
				if !field.Type.NonNull || field.Type.Elem != nil {
					continue
				}
				fieldType := schema.Types[field.Type.NamedType]
				if fieldType == nil || fieldType.Kind != ast.InputObject {
					continue
				}
				cycleIndex, onPath := pathIndex[fieldType.Name]
				fieldPath = append(fieldPath, field)
				if !onPath {
					detect(fieldType)
				} else {
					cycle := fieldPath[cycleIndex:]
					names := make([]string, len(cycle))
					for i, f := range cycle {
						names[i] = f.Name
					}
					ctx.report(cl, "Cannot reference Input Object "+quote(fieldType.Name)+
						" within itself through a series of non-null fields: "+quote(strings.Join(names, "."))+".",
						anySlice(cycle)...)
				}
				fieldPath = fieldPath[:len(fieldPath)-1]
			}
			delete(pathIndex, input.Name)
		}

		return visitor.Funcs{
			visitor.Document: {Enter: func(c *visitor.Cursor) visitor.Action {
				for _, def := range c.Node.(*language.Document).Schema.Definitions {
					if def.Kind == ast.InputObject {
						if merged := schema.Types[def.Name]; merged != nil && merged.Kind == ast.InputObject {
							detect(merged)
						}
					}
				}
				return visitor.Skip
			}},
		}
	},
}
