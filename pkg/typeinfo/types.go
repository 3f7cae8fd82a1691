package typeinfo

import (
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Lookup returns the schema definition of t's named type, or nil.
func Lookup(schema *ast.Schema, t *ast.Type) *ast.Definition {
	if schema == nil || t == nil {
		return nil
	}
	return schema.Types[t.Name()]
}

// TypeFromAST returns t when its named type exists in the schema, nil otherwise.
func TypeFromAST(schema *ast.Schema, t *ast.Type) *ast.Type {
	if Lookup(schema, t) == nil {
		return nil
	}
	return t
}

// Nullable returns t without its outermost non-null marker.
func Nullable(t *ast.Type) *ast.Type {
	if t == nil || !t.NonNull {
		return t
	}
	nullable := *t
	nullable.NonNull = false
	return &nullable
}

// IsList reports whether t is a list type, ignoring non-null.
func IsList(t *ast.Type) bool {
	return t != nil && t.Elem != nil
}

// Equal reports whether a and b are the same type reference.
func Equal(a, b *ast.Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.NonNull != b.NonNull {
		return false
	}
	if IsList(a) || IsList(b) {
		return IsList(a) && IsList(b) && Equal(a.Elem, b.Elem)
	}
	return a.NamedType == b.NamedType
}

// IsInputType reports whether t names a scalar, enum or input object.
func IsInputType(schema *ast.Schema, t *ast.Type) bool {
	def := Lookup(schema, t)
	return def != nil && def.IsInputType()
}

// IsOutputType reports whether t names a scalar, object, interface, union or enum.
func IsOutputType(schema *ast.Schema, t *ast.Type) bool {
	def := Lookup(schema, t)
	return def != nil && def.Kind != ast.InputObject
}

// IsLeafType reports whether t names a scalar or an enum.
func IsLeafType(schema *ast.Schema, t *ast.Type) bool {
	def := Lookup(schema, t)
	return def != nil && def.IsLeafType()
}

// IsSubType reports whether maybeSub is a member of the abstract type.
func IsSubType(abstract, maybeSub *ast.Definition) bool {
	if abstract == nil || maybeSub == nil {
		return false
	}
	switch abstract.Kind {
	case ast.Union:
		return slices.Contains(abstract.Types, maybeSub.Name)
	case ast.Interface:
		return slices.Contains(maybeSub.Interfaces, abstract.Name)
	}
	return false
}

// IsTypeSubTypeOf reports whether a value of type maybeSub can be used where super is
// expected: same type, a non-null version of it, or a member of an abstract type.
func IsTypeSubTypeOf(schema *ast.Schema, maybeSub, super *ast.Type) bool {
	if Equal(maybeSub, super) {
		return true
	}
	if super.NonNull {
		if maybeSub.NonNull {
			return IsTypeSubTypeOf(schema, Nullable(maybeSub), Nullable(super))
		}
		return false
	}
	if maybeSub.NonNull {
		return IsTypeSubTypeOf(schema, Nullable(maybeSub), super)
	}
	if IsList(super) {
		if IsList(maybeSub) {
			return IsTypeSubTypeOf(schema, maybeSub.Elem, super.Elem)
		}
		return false
	}
	if IsList(maybeSub) {
		return false
	}
	superDef := Lookup(schema, super)
	subDef := Lookup(schema, maybeSub)
	return superDef != nil && superDef.IsAbstractType() &&
		subDef != nil && (subDef.Kind == ast.Object || subDef.Kind == ast.Interface) &&
		IsSubType(superDef, subDef)
}

// PossibleTypes returns the object types a composite type can resolve to, by name.
func PossibleTypes(schema *ast.Schema, def *ast.Definition) []*ast.Definition {
	if def == nil {
		return nil
	}
	switch def.Kind {
	case ast.Object:
		return []*ast.Definition{def}
	case ast.Union:
		var types []*ast.Definition
		for _, name := range def.Types {
			if member := schema.Types[name]; member != nil {
				types = append(types, member)
			}
		}
		return types
	case ast.Interface:
		var types []*ast.Definition
		for _, t := range schema.Types {
			if t.Kind == ast.Object && slices.Contains(t.Interfaces, def.Name) {
				types = append(types, t)
			}
		}
		slices.SortFunc(types, func(a, b *ast.Definition) int { return strings.Compare(a.Name, b.Name) })
		return types
	}
	return nil
}

// DoTypesOverlap reports whether some object type could be both a and b.
func DoTypesOverlap(schema *ast.Schema, a, b *ast.Definition) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b || a.Name == b.Name {
		return true
	}
	if a.IsAbstractType() {
		if b.IsAbstractType() {
			for _, t := range PossibleTypes(schema, a) {
				if isPossibleType(schema, b, t) {
					return true
				}
			}
			return false
		}
		return isPossibleType(schema, a, b)
	}
	if b.IsAbstractType() {
		return isPossibleType(schema, b, a)
	}
	return false
}

func isPossibleType(schema *ast.Schema, abstract, t *ast.Definition) bool {
	for _, possible := range PossibleTypes(schema, abstract) {
		if possible.Name == t.Name {
			return true
		}
	}
	return false
}

// RootType returns the root operation type for op, or nil.
func RootType(schema *ast.Schema, op ast.Operation) *ast.Definition {
	if schema == nil {
		return nil
	}
	switch op {
	case ast.Query:
		return schema.Query
	case ast.Mutation:
		return schema.Mutation
	case ast.Subscription:
		return schema.Subscription
	}
	return nil
}

var (
	typeNameMetaField = &ast.FieldDefinition{
		Name: "__typename",
		Type: ast.NonNullNamedType("String", nil),
	}
	schemaMetaField = &ast.FieldDefinition{
		Name: "__schema",
		Type: ast.NonNullNamedType("__Schema", nil),
	}
	typeMetaField = &ast.FieldDefinition{
		Name: "__type",
		Type: ast.NamedType("__Type", nil),
		Arguments: ast.ArgumentDefinitionList{
			{Name: "name", Type: ast.NonNullNamedType("String", nil)},
		},
	}
)

// FieldDef looks a field up on parent, including the introspection meta fields.
func FieldDef(schema *ast.Schema, parent *ast.Definition, name string) *ast.FieldDefinition {
	if parent == nil {
		return nil
	}
	if schema != nil && parent == schema.Query {
		switch name {
		case schemaMetaField.Name:
			if f := parent.Fields.ForName(name); f != nil {
				return f
			}
			return schemaMetaField
		case typeMetaField.Name:
			if f := parent.Fields.ForName(name); f != nil {
				return f
			}
			return typeMetaField
		}
	}
	if name == typeNameMetaField.Name && parent.IsCompositeType() {
		return typeNameMetaField
	}
	if parent.Kind == ast.Object || parent.Kind == ast.Interface {
		return parent.Fields.ForName(name)
	}
	return nil
}
