// Package language provides a GraphQL document that keeps every top-level definition in
// source order, whether it belongs to an executable document or to the type system.
//
// gqlparser splits the two worlds into QueryDocument and SchemaDocument and refuses to
// parse a query file holding a type definition. Validation needs both views at once
// (the executable definitions rule reports exactly those type definitions), so Document
// carries the two gqlparser documents plus the ordered list of definitions.
package language

import (
	"slices"

	"github.com/vektah/gqlparser/v2/ast"
)

// DefinitionKind tags a top-level definition.
type DefinitionKind int

const (
	OperationDefinition DefinitionKind = iota
	FragmentDefinition
	SchemaDefinition
	SchemaExtension
	DirectiveDefinition
	TypeDefinition
	TypeExtension
)

func (k DefinitionKind) String() string {
	switch k {
	case OperationDefinition:
		return "OperationDefinition"
	case FragmentDefinition:
		return "FragmentDefinition"
	case SchemaDefinition:
		return "SchemaDefinition"
	case SchemaExtension:
		return "SchemaExtension"
	case DirectiveDefinition:
		return "DirectiveDefinition"
	case TypeDefinition:
		return "TypeDefinition"
	case TypeExtension:
		return "TypeExtension"
	default:
		return "Unknown"
	}
}

// IsExecutable reports whether definitions of this kind may appear in an executable document.
func (k DefinitionKind) IsExecutable() bool {
	return k == OperationDefinition || k == FragmentDefinition
}

// Definition is one top-level definition. Exactly one of the node fields is set,
// matching Kind.
type Definition struct {
	Kind      DefinitionKind
	Operation *ast.OperationDefinition
	Fragment  *ast.FragmentDefinition
	Schema    *ast.SchemaDefinition
	Directive *ast.DirectiveDefinition
	Type      *ast.Definition
}

// Node returns the gqlparser node held by the definition.
func (d *Definition) Node() any {
	switch d.Kind {
	case OperationDefinition:
		return d.Operation
	case FragmentDefinition:
		return d.Fragment
	case SchemaDefinition, SchemaExtension:
		return d.Schema
	case DirectiveDefinition:
		return d.Directive
	default:
		return d.Type
	}
}

// Name returns the definition's name, or "" for anonymous operations and schema definitions.
func (d *Definition) Name() string {
	switch d.Kind {
	case OperationDefinition:
		return d.Operation.Name
	case FragmentDefinition:
		return d.Fragment.Name
	case DirectiveDefinition:
		return d.Directive.Name
	case TypeDefinition, TypeExtension:
		return d.Type.Name
	default:
		return ""
	}
}

// Position returns the position gqlparser recorded for the definition.
func (d *Definition) Position() *ast.Position {
	switch d.Kind {
	case OperationDefinition:
		return d.Operation.Position
	case FragmentDefinition:
		return d.Fragment.Position
	case SchemaDefinition, SchemaExtension:
		return d.Schema.Position
	case DirectiveDefinition:
		return d.Directive.Position
	default:
		return d.Type.Position
	}
}

// Document is a parsed GraphQL document.
type Document struct {
	Source      *ast.Source
	Definitions []*Definition

	// Query holds the executable definitions, Schema the type-system ones.
	// Both are always non-nil.
	Query  *ast.QueryDocument
	Schema *ast.SchemaDocument

	// members holds the positions of implemented interface and union member names,
	// which gqlparser stores as plain strings.
	members map[*ast.Definition][]*ast.Position
}

// MemberPosition returns where the i-th implemented interface or union member of def
// is named. It falls back to the position of def when the name was not located, as for
// documents built with FromSchema.
func (d *Document) MemberPosition(def *ast.Definition, i int) *ast.Position {
	if d == nil {
		return def.Position
	}
	if positions := d.members[def]; i >= 0 && i < len(positions) {
		return positions[i]
	}
	return def.Position
}

// FromQuery wraps an already parsed executable document.
func FromQuery(doc *ast.QueryDocument) *Document {
	return newDocument(nil, doc, nil)
}

// FromSchema wraps an already parsed type-system document.
func FromSchema(doc *ast.SchemaDocument) *Document {
	return newDocument(nil, nil, doc)
}

func newDocument(src *ast.Source, query *ast.QueryDocument, schema *ast.SchemaDocument) *Document {
	if query == nil {
		query = &ast.QueryDocument{}
	}
	if schema == nil {
		schema = &ast.SchemaDocument{}
	}

	var defs []*Definition
	for _, op := range query.Operations {
		defs = append(defs, &Definition{Kind: OperationDefinition, Operation: op})
	}
	for _, frag := range query.Fragments {
		defs = append(defs, &Definition{Kind: FragmentDefinition, Fragment: frag})
	}
	for _, def := range schema.Schema {
		defs = append(defs, &Definition{Kind: SchemaDefinition, Schema: def})
	}
	for _, def := range schema.SchemaExtension {
		defs = append(defs, &Definition{Kind: SchemaExtension, Schema: def})
	}
	for _, def := range schema.Directives {
		defs = append(defs, &Definition{Kind: DirectiveDefinition, Directive: def})
	}
	for _, def := range schema.Definitions {
		defs = append(defs, &Definition{Kind: TypeDefinition, Type: def})
	}
	for _, def := range schema.Extensions {
		defs = append(defs, &Definition{Kind: TypeExtension, Type: def})
	}

	slices.SortStableFunc(defs, func(a, b *Definition) int {
		return offset(a.Position()) - offset(b.Position())
	})

	return &Document{
		Source:      src,
		Definitions: defs,
		Query:       query,
		Schema:      schema,
	}
}

func offset(pos *ast.Position) int {
	if pos == nil {
		return 0
	}
	return pos.Start
}

// Executable reports whether the document only holds operations and fragments.
func (d *Document) Executable() bool {
	for _, def := range d.Definitions {
		if !def.Kind.IsExecutable() {
			return false
		}
	}
	return true
}
