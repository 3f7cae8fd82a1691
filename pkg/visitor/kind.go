package visitor

import (
	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/vektah/gqlparser/v2/ast"
)

// Kind is the closed set of node kinds the walker reports.
type Kind int

const (
	Invalid Kind = iota
	Document

	// Executable definitions.
	OperationDefinition
	VariableDefinition
	SelectionSet
	Field
	Argument
	FragmentSpread
	InlineFragment
	FragmentDefinition
	Directive

	// Values.
	Variable
	IntValue
	FloatValue
	StringValue
	BooleanValue
	NullValue
	EnumValue
	ListValue
	ObjectValue
	ObjectField

	// Type references. Non-null is the NonNull attribute of either kind.
	NamedType
	ListType

	// Type system.
	SchemaDefinition
	SchemaExtension
	OperationTypeDefinition
	ScalarTypeDefinition
	ObjectTypeDefinition
	InterfaceTypeDefinition
	UnionTypeDefinition
	EnumTypeDefinition
	InputObjectTypeDefinition
	ScalarTypeExtension
	ObjectTypeExtension
	InterfaceTypeExtension
	UnionTypeExtension
	EnumTypeExtension
	InputObjectTypeExtension
	FieldDefinition
	ArgumentDefinition
	InputFieldDefinition
	EnumValueDefinition
	DirectiveDefinition
)

var kindNames = map[Kind]string{
	Invalid:                   "Invalid",
	Document:                  "Document",
	OperationDefinition:       "OperationDefinition",
	VariableDefinition:        "VariableDefinition",
	SelectionSet:              "SelectionSet",
	Field:                     "Field",
	Argument:                  "Argument",
	FragmentSpread:            "FragmentSpread",
	InlineFragment:            "InlineFragment",
	FragmentDefinition:        "FragmentDefinition",
	Directive:                 "Directive",
	Variable:                  "Variable",
	IntValue:                  "IntValue",
	FloatValue:                "FloatValue",
	StringValue:               "StringValue",
	BooleanValue:              "BooleanValue",
	NullValue:                 "NullValue",
	EnumValue:                 "EnumValue",
	ListValue:                 "ListValue",
	ObjectValue:               "ObjectValue",
	ObjectField:               "ObjectField",
	NamedType:                 "NamedType",
	ListType:                  "ListType",
	SchemaDefinition:          "SchemaDefinition",
	SchemaExtension:           "SchemaExtension",
	OperationTypeDefinition:   "OperationTypeDefinition",
	ScalarTypeDefinition:      "ScalarTypeDefinition",
	ObjectTypeDefinition:      "ObjectTypeDefinition",
	InterfaceTypeDefinition:   "InterfaceTypeDefinition",
	UnionTypeDefinition:       "UnionTypeDefinition",
	EnumTypeDefinition:        "EnumTypeDefinition",
	InputObjectTypeDefinition: "InputObjectTypeDefinition",
	ScalarTypeExtension:       "ScalarTypeExtension",
	ObjectTypeExtension:       "ObjectTypeExtension",
	InterfaceTypeExtension:    "InterfaceTypeExtension",
	UnionTypeExtension:        "UnionTypeExtension",
	EnumTypeExtension:         "EnumTypeExtension",
	InputObjectTypeExtension:  "InputObjectTypeExtension",
	FieldDefinition:           "FieldDefinition",
	ArgumentDefinition:        "ArgumentDefinition",
	InputFieldDefinition:      "InputFieldDefinition",
	EnumValueDefinition:       "EnumValueDefinition",
	DirectiveDefinition:       "DirectiveDefinition",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDefinition reports whether k is one of the six named type definitions.
func (k Kind) IsTypeDefinition() bool {
	return k >= ScalarTypeDefinition && k <= InputObjectTypeDefinition
}

// IsTypeExtension reports whether k is one of the six named type extensions.
func (k Kind) IsTypeExtension() bool {
	return k >= ScalarTypeExtension && k <= InputObjectTypeExtension
}

// IsValue reports whether k is a value literal kind.
func (k Kind) IsValue() bool {
	return k >= Variable && k <= ObjectValue
}

// TypeDefinitionKind returns the kind used for a type definition (or extension) of def.
func TypeDefinitionKind(def *ast.Definition, extension bool) Kind {
	var k Kind
	switch def.Kind {
	case ast.Scalar:
		k = ScalarTypeDefinition
	case ast.Object:
		k = ObjectTypeDefinition
	case ast.Interface:
		k = InterfaceTypeDefinition
	case ast.Union:
		k = UnionTypeDefinition
	case ast.Enum:
		k = EnumTypeDefinition
	case ast.InputObject:
		k = InputObjectTypeDefinition
	default:
		return Invalid
	}
	if extension {
		k += ScalarTypeExtension - ScalarTypeDefinition
	}
	return k
}

// ValueKind maps a gqlparser value to its node kind. Block strings are strings.
func ValueKind(v *ast.Value) Kind {
	switch v.Kind {
	case ast.Variable:
		return Variable
	case ast.IntValue:
		return IntValue
	case ast.FloatValue:
		return FloatValue
	case ast.StringValue, ast.BlockValue:
		return StringValue
	case ast.BooleanValue:
		return BooleanValue
	case ast.NullValue:
		return NullValue
	case ast.EnumValue:
		return EnumValue
	case ast.ListValue:
		return ListValue
	case ast.ObjectValue:
		return ObjectValue
	}
	return Invalid
}

// KindOf infers the kind of a node. Nodes whose kind depends on where they sit
// (type definitions versus extensions, input fields versus output fields) resolve to
// the definition form; use the Cursor's Kind during a walk instead.
func KindOf(node any) Kind {
	switch n := node.(type) {
	case *language.Document:
		return Document
	case *ast.OperationDefinition:
		return OperationDefinition
	case *ast.VariableDefinition:
		return VariableDefinition
	case ast.SelectionSet:
		return SelectionSet
	case *ast.Field:
		return Field
	case *ast.Argument:
		return Argument
	case *ast.FragmentSpread:
		return FragmentSpread
	case *ast.InlineFragment:
		return InlineFragment
	case *ast.FragmentDefinition:
		return FragmentDefinition
	case *ast.Directive:
		return Directive
	case *ast.Value:
		return ValueKind(n)
	case *ast.ChildValue:
		return ObjectField
	case *ast.Type:
		if n.Elem != nil {
			return ListType
		}
		return NamedType
	case *ast.SchemaDefinition:
		return SchemaDefinition
	case *ast.OperationTypeDefinition:
		return OperationTypeDefinition
	case *ast.Definition:
		return TypeDefinitionKind(n, false)
	case *ast.FieldDefinition:
		return FieldDefinition
	case *ast.ArgumentDefinition:
		return ArgumentDefinition
	case *ast.EnumValueDefinition:
		return EnumValueDefinition
	case *ast.DirectiveDefinition:
		return DirectiveDefinition
	}
	return Invalid
}
