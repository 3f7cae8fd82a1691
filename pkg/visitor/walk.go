package visitor

import (
	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/vektah/gqlparser/v2/ast"
)

type walker struct {
	v         Visitor
	doc       *language.Document
	path      []any
	ancestors []any
	stopped   bool
}

// Walk traverses root depth-first and returns it, or its replacement.
// The kind of root is inferred with KindOf.
func Walk(root any, v Visitor) any {
	return WalkKind(root, KindOf(root), v)
}

// WalkKind is Walk with an explicit kind for the root node.
func WalkKind(root any, kind Kind, v Visitor) any {
	w := &walker{v: v}
	w.visit(root, kind, nil, "", -1, func(n any) { root = n })
	return root
}

func (w *walker) visit(node any, kind Kind, parent any, key string, index int, set func(any)) {
	if w.stopped {
		return
	}

	depth := len(w.path)
	if key != "" {
		w.path = append(w.path, key)
		if index >= 0 {
			w.path = append(w.path, index)
		}
	}
	defer func() { w.path = w.path[:depth] }()

	c := &Cursor{Node: node, Kind: kind, Key: key, Index: index, Parent: parent, w: w, set: set}

	switch w.v.Enter(c) {
	case Break:
		w.stopped = true
		return
	case Skip:
		return
	}

	w.ancestors = append(w.ancestors, c.Node)
	w.children(c)
	w.ancestors = w.ancestors[:len(w.ancestors)-1]

	if w.stopped {
		return
	}
	if w.v.Leave(c) == Break {
		w.stopped = true
	}
}

// children visits the children of c.Node in reference order.
func (w *walker) children(c *Cursor) {
	switch n := c.Node.(type) {
	case *language.Document:
		w.doc = n
		for i, def := range n.Definitions {
			w.visit(def.Node(), definitionKind(def), n, "Definitions", i, func(x any) { setDefinition(def, x) })
		}

	case *ast.OperationDefinition:
		w.variableDefinitions(n, n.VariableDefinitions)
		w.directives(n, n.Directives)
		w.selectionSet(n, n.SelectionSet, func(s ast.SelectionSet) { n.SelectionSet = s })

	case *ast.VariableDefinition:
		w.typeRef(n, n.Type, func(t *ast.Type) { n.Type = t })
		w.value(n, "DefaultValue", -1, n.DefaultValue, func(v *ast.Value) { n.DefaultValue = v })
		w.directives(n, n.Directives)

	case ast.SelectionSet:
		for i, sel := range n {
			var kind Kind
			switch sel.(type) {
			case *ast.Field:
				kind = Field
			case *ast.FragmentSpread:
				kind = FragmentSpread
			case *ast.InlineFragment:
				kind = InlineFragment
			default:
				continue
			}
			w.visit(sel, kind, n, "Selections", i, func(x any) { n[i] = x.(ast.Selection) })
		}

	case *ast.Field:
		w.arguments(n, n.Arguments)
		w.directives(n, n.Directives)
		w.selectionSet(n, n.SelectionSet, func(s ast.SelectionSet) { n.SelectionSet = s })

	case *ast.Argument:
		w.value(n, "Value", -1, n.Value, func(v *ast.Value) { n.Value = v })

	case *ast.FragmentSpread:
		w.directives(n, n.Directives)

	case *ast.InlineFragment:
		if n.TypeCondition != "" {
			w.namedType(n, "TypeCondition", -1, n.TypeCondition, n.Position, func(s string) { n.TypeCondition = s })
		}
		w.directives(n, n.Directives)
		w.selectionSet(n, n.SelectionSet, func(s ast.SelectionSet) { n.SelectionSet = s })

	case *ast.FragmentDefinition:
		w.variableDefinitions(n, n.VariableDefinition)
		w.namedType(n, "TypeCondition", -1, n.TypeCondition, n.Position, func(s string) { n.TypeCondition = s })
		w.directives(n, n.Directives)
		w.selectionSet(n, n.SelectionSet, func(s ast.SelectionSet) { n.SelectionSet = s })

	case *ast.Directive:
		w.arguments(n, n.Arguments)

	case *ast.Value:
		switch n.Kind {
		case ast.ListValue:
			for i, child := range n.Children {
				w.value(n, "Values", i, child.Value, func(v *ast.Value) { child.Value = v })
			}
		case ast.ObjectValue:
			for i, child := range n.Children {
				w.visit(child, ObjectField, n, "Fields", i, func(x any) { n.Children[i] = x.(*ast.ChildValue) })
			}
		}

	case *ast.ChildValue:
		w.value(n, "Value", -1, n.Value, func(v *ast.Value) { n.Value = v })

	case *ast.Type:
		if n.Elem != nil {
			w.typeRef(n, n.Elem, func(t *ast.Type) { n.Elem = t })
		}

	case *ast.SchemaDefinition:
		w.directives(n, n.Directives)
		for i, op := range n.OperationTypes {
			w.visit(op, OperationTypeDefinition, n, "OperationTypes", i, func(x any) {
				n.OperationTypes[i] = x.(*ast.OperationTypeDefinition)
			})
		}

	case *ast.OperationTypeDefinition:
		w.namedType(n, "Type", -1, n.Type, n.Position, func(s string) { n.Type = s })

	case *ast.Definition:
		w.typeDefinition(n)

	case *ast.FieldDefinition:
		w.argumentDefinitions(n, n.Arguments)
		w.typeRef(n, n.Type, func(t *ast.Type) { n.Type = t })
		w.value(n, "DefaultValue", -1, n.DefaultValue, func(v *ast.Value) { n.DefaultValue = v })
		w.directives(n, n.Directives)

	case *ast.ArgumentDefinition:
		w.typeRef(n, n.Type, func(t *ast.Type) { n.Type = t })
		w.value(n, "DefaultValue", -1, n.DefaultValue, func(v *ast.Value) { n.DefaultValue = v })
		w.directives(n, n.Directives)

	case *ast.EnumValueDefinition:
		w.directives(n, n.Directives)

	case *ast.DirectiveDefinition:
		w.argumentDefinitions(n, n.Arguments)
	}
}

func (w *walker) typeDefinition(n *ast.Definition) {
	switch n.Kind {
	case ast.Object, ast.Interface:
		for i, name := range n.Interfaces {
			w.namedType(n, "Interfaces", i, name, w.memberPosition(n, i), func(s string) { n.Interfaces[i] = s })
		}
		w.directives(n, n.Directives)
		for i, f := range n.Fields {
			w.visit(f, FieldDefinition, n, "Fields", i, func(x any) { n.Fields[i] = x.(*ast.FieldDefinition) })
		}
	case ast.InputObject:
		w.directives(n, n.Directives)
		for i, f := range n.Fields {
			w.visit(f, InputFieldDefinition, n, "Fields", i, func(x any) { n.Fields[i] = x.(*ast.FieldDefinition) })
		}
	case ast.Union:
		w.directives(n, n.Directives)
		for i, name := range n.Types {
			w.namedType(n, "Types", i, name, w.memberPosition(n, i), func(s string) { n.Types[i] = s })
		}
	case ast.Enum:
		w.directives(n, n.Directives)
		for i, v := range n.EnumValues {
			w.visit(v, EnumValueDefinition, n, "EnumValues", i, func(x any) { n.EnumValues[i] = x.(*ast.EnumValueDefinition) })
		}
	default:
		w.directives(n, n.Directives)
	}
}

func (w *walker) memberPosition(def *ast.Definition, i int) *ast.Position {
	return w.doc.MemberPosition(def, i)
}

func (w *walker) variableDefinitions(parent any, list ast.VariableDefinitionList) {
	for i, def := range list {
		w.visit(def, VariableDefinition, parent, "VariableDefinitions", i, func(x any) { list[i] = x.(*ast.VariableDefinition) })
	}
}

func (w *walker) directives(parent any, list ast.DirectiveList) {
	for i, d := range list {
		w.visit(d, Directive, parent, "Directives", i, func(x any) { list[i] = x.(*ast.Directive) })
	}
}

func (w *walker) arguments(parent any, list ast.ArgumentList) {
	for i, arg := range list {
		w.visit(arg, Argument, parent, "Arguments", i, func(x any) { list[i] = x.(*ast.Argument) })
	}
}

func (w *walker) argumentDefinitions(parent any, list ast.ArgumentDefinitionList) {
	for i, arg := range list {
		w.visit(arg, ArgumentDefinition, parent, "Arguments", i, func(x any) { list[i] = x.(*ast.ArgumentDefinition) })
	}
}

func (w *walker) selectionSet(parent any, set ast.SelectionSet, assign func(ast.SelectionSet)) {
	if len(set) == 0 {
		return
	}
	w.visit(set, SelectionSet, parent, "SelectionSet", -1, func(x any) { assign(x.(ast.SelectionSet)) })
}

func (w *walker) value(parent any, key string, index int, v *ast.Value, assign func(*ast.Value)) {
	if v == nil {
		return
	}
	w.visit(v, ValueKind(v), parent, key, index, func(x any) { assign(x.(*ast.Value)) })
}

func (w *walker) typeRef(parent any, t *ast.Type, assign func(*ast.Type)) {
	if t == nil {
		return
	}
	kind := NamedType
	if t.Elem != nil {
		kind = ListType
	}
	w.visit(t, kind, parent, "Type", -1, func(x any) { assign(x.(*ast.Type)) })
}

// namedType surfaces a type name gqlparser stores as a plain string.
func (w *walker) namedType(parent any, key string, index int, name string, pos *ast.Position, assign func(string)) {
	node := &ast.Type{NamedType: name, Position: pos}
	w.visit(node, NamedType, parent, key, index, func(x any) { assign(x.(*ast.Type).NamedType) })
}

func definitionKind(def *language.Definition) Kind {
	switch def.Kind {
	case language.OperationDefinition:
		return OperationDefinition
	case language.FragmentDefinition:
		return FragmentDefinition
	case language.SchemaDefinition:
		return SchemaDefinition
	case language.SchemaExtension:
		return SchemaExtension
	case language.DirectiveDefinition:
		return DirectiveDefinition
	case language.TypeDefinition:
		return TypeDefinitionKind(def.Type, false)
	case language.TypeExtension:
		return TypeDefinitionKind(def.Type, true)
	}
	return Invalid
}

// setDefinition stores a replacement node in def. The document's Query and Schema
// views are not rewritten.
func setDefinition(def *language.Definition, n any) {
	switch x := n.(type) {
	case *ast.OperationDefinition:
		def.Operation = x
	case *ast.FragmentDefinition:
		def.Fragment = x
	case *ast.SchemaDefinition:
		def.Schema = x
	case *ast.DirectiveDefinition:
		def.Directive = x
	case *ast.Definition:
		def.Type = x
	}
}
