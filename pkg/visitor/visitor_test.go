package visitor_test

import (
	"fmt"
	"testing"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

const query = `query Q($a: Int) { dog { name(x: 1) } }`

// recorder logs every callback as "enter:Kind" or "leave:Kind".
type recorder struct {
	events []string
	enter  func(c *visitor.Cursor) visitor.Action
	leave  func(c *visitor.Cursor) visitor.Action
}

func (r *recorder) Enter(c *visitor.Cursor) visitor.Action {
	r.events = append(r.events, "enter:"+c.Kind.String())
	if r.enter != nil {
		return r.enter(c)
	}
	return visitor.Continue
}

func (r *recorder) Leave(c *visitor.Cursor) visitor.Action {
	r.events = append(r.events, "leave:"+c.Kind.String())
	if r.leave != nil {
		return r.leave(c)
	}
	return visitor.Continue
}

func fieldNamed(name string) func(c *visitor.Cursor) bool {
	return func(c *visitor.Cursor) bool {
		f, ok := c.Node.(*ast.Field)
		return ok && f.Name == name
	}
}

var fullWalk = []string{
	"enter:Document",
	"enter:OperationDefinition",
	"enter:VariableDefinition",
	"enter:NamedType",
	"leave:NamedType",
	"leave:VariableDefinition",
	"enter:SelectionSet",
	"enter:Field",
	"enter:SelectionSet",
	"enter:Field",
	"enter:Argument",
	"enter:IntValue",
	"leave:IntValue",
	"leave:Argument",
	"leave:Field",
	"leave:SelectionSet",
	"leave:Field",
	"leave:SelectionSet",
	"leave:OperationDefinition",
	"leave:Document",
}

func TestWalk_Order(t *testing.T) {
	r := &recorder{}
	visitor.Walk(language.MustParse(query), r)
	assert.Equal(t, fullWalk, r.events)
}

func TestWalk_TypeSystemDocument(t *testing.T) {
	r := &recorder{}
	visitor.Walk(language.MustParse(`type T implements I { f(a: [Int!]): String } extend enum E { A }`), r)
	assert.Equal(t, []string{
		"enter:Document",
		"enter:ObjectTypeDefinition",
		"enter:NamedType",
		"leave:NamedType",
		"enter:FieldDefinition",
		"enter:ArgumentDefinition",
		"enter:ListType",
		"enter:NamedType",
		"leave:NamedType",
		"leave:ListType",
		"leave:ArgumentDefinition",
		"enter:NamedType",
		"leave:NamedType",
		"leave:FieldDefinition",
		"leave:ObjectTypeDefinition",
		"enter:EnumTypeExtension",
		"enter:EnumValueDefinition",
		"leave:EnumValueDefinition",
		"leave:EnumTypeExtension",
		"leave:Document",
	}, r.events)
}

func TestWalk_MemberNamedTypesCarryTheirOwnPositions(t *testing.T) {
	var got []string
	visitor.Walk(language.MustParse("type T implements I & J { f: String }\nunion U = A | B"), visitor.Funcs{
		visitor.NamedType: {Enter: func(c *visitor.Cursor) visitor.Action {
			if c.Key == "Interfaces" || c.Key == "Types" {
				n := c.Node.(*ast.Type)
				got = append(got, fmt.Sprintf("%s@%d:%d", n.NamedType, n.Position.Line, n.Position.Column))
			}
			return visitor.Continue
		}},
	})
	assert.Equal(t, []string{"I@1:19", "J@1:23", "A@2:11", "B@2:15"}, got)
}

func TestWalk_SkipHidesSubtreeAndLeave(t *testing.T) {
	isDog := fieldNamed("dog")
	r := &recorder{enter: func(c *visitor.Cursor) visitor.Action {
		if isDog(c) {
			return visitor.Skip
		}
		return visitor.Continue
	}}
	visitor.Walk(language.MustParse(query), r)
	assert.Equal(t, []string{
		"enter:Document",
		"enter:OperationDefinition",
		"enter:VariableDefinition",
		"enter:NamedType",
		"leave:NamedType",
		"leave:VariableDefinition",
		"enter:SelectionSet",
		"enter:Field",
		"leave:SelectionSet",
		"leave:OperationDefinition",
		"leave:Document",
	}, r.events)
}

func TestWalk_BreakStopsEverything(t *testing.T) {
	r := &recorder{enter: func(c *visitor.Cursor) visitor.Action {
		if c.Kind == visitor.Argument {
			return visitor.Break
		}
		return visitor.Continue
	}}
	visitor.Walk(language.MustParse(query), r)
	assert.Equal(t, fullWalk[:11], r.events)

	r = &recorder{leave: func(c *visitor.Cursor) visitor.Action {
		if c.Kind == visitor.IntValue {
			return visitor.Break
		}
		return visitor.Continue
	}}
	visitor.Walk(language.MustParse(query), r)
	assert.Equal(t, fullWalk[:13], r.events)
}

func TestWalk_Replace(t *testing.T) {
	doc := language.MustParse(query)
	var seen []string
	visitor.Walk(doc, visitor.Funcs{
		visitor.IntValue: {Enter: func(c *visitor.Cursor) visitor.Action {
			c.Replace(&ast.Value{Kind: ast.StringValue, Raw: "one"})
			assert.True(t, c.Replaced())
			assert.Equal(t, visitor.StringValue, c.Kind)
			return visitor.Continue
		}},
		visitor.StringValue: {Leave: func(c *visitor.Cursor) visitor.Action {
			seen = append(seen, c.Node.(*ast.Value).Raw)
			return visitor.Continue
		}},
	})

	assert.Equal(t, []string{"one"}, seen)
	dog := doc.Query.Operations[0].SelectionSet[0].(*ast.Field)
	name := dog.SelectionSet[0].(*ast.Field)
	require.Len(t, name.Arguments, 1)
	assert.Equal(t, ast.StringValue, name.Arguments[0].Value.Kind)
	assert.Equal(t, "one", name.Arguments[0].Value.Raw)
}

func TestWalk_ReplaceRoot(t *testing.T) {
	original := &ast.Value{Kind: ast.IntValue, Raw: "1"}
	replacement := &ast.Value{Kind: ast.IntValue, Raw: "2"}
	got := visitor.Walk(original, visitor.Funcs{
		visitor.IntValue: {Leave: func(c *visitor.Cursor) visitor.Action {
			if c.Node == original {
				c.Replace(replacement)
			}
			return visitor.Continue
		}},
	})
	assert.Same(t, replacement, got)
}

func TestCursor_PathAndAncestors(t *testing.T) {
	var path []any
	var ancestors []any
	var parent any
	visitor.Walk(language.MustParse(query), visitor.Funcs{
		visitor.IntValue: {Enter: func(c *visitor.Cursor) visitor.Action {
			path = c.Path()
			ancestors = c.Ancestors()
			parent = c.Parent
			return visitor.Continue
		}},
	})

	assert.Equal(t, []any{
		"Definitions", 0,
		"SelectionSet",
		"Selections", 0,
		"SelectionSet",
		"Selections", 0,
		"Arguments", 0,
		"Value",
	}, path)
	require.Len(t, ancestors, 7)
	assert.IsType(t, &language.Document{}, ancestors[0])
	assert.IsType(t, &ast.Argument{}, ancestors[6])
	assert.Same(t, ancestors[6], parent)
}

func TestMultiple_SkipIsPerVisitor(t *testing.T) {
	isDog := fieldNamed("dog")
	skipper := &recorder{enter: func(c *visitor.Cursor) visitor.Action {
		if isDog(c) {
			return visitor.Skip
		}
		return visitor.Continue
	}}
	full := &recorder{}

	visitor.Walk(language.MustParse(query), visitor.Multiple(skipper, full))

	assert.Equal(t, fullWalk, full.events)
	assert.Equal(t, []string{
		"enter:Document",
		"enter:OperationDefinition",
		"enter:VariableDefinition",
		"enter:NamedType",
		"leave:NamedType",
		"leave:VariableDefinition",
		"enter:SelectionSet",
		"enter:Field",
		"leave:SelectionSet",
		"leave:OperationDefinition",
		"leave:Document",
	}, skipper.events)
}

func TestMultiple_BreakSilencesOneVisitor(t *testing.T) {
	stopper := &recorder{enter: func(c *visitor.Cursor) visitor.Action {
		if c.Kind == visitor.SelectionSet {
			return visitor.Break
		}
		return visitor.Continue
	}}
	full := &recorder{}

	visitor.Walk(language.MustParse(query), visitor.Multiple(stopper, full))

	assert.Equal(t, fullWalk, full.events)
	assert.Equal(t, fullWalk[:7], stopper.events)
}

func TestMultiple_AllStoppedBreaksWalk(t *testing.T) {
	var entered int
	counter := visitor.Funcs{visitor.Field: {Enter: func(*visitor.Cursor) visitor.Action {
		entered++
		return visitor.Break
	}}}
	visitor.Walk(language.MustParse(query), visitor.Multiple(counter))
	assert.Equal(t, 1, entered)
}

// tracker counts the balance of Enter and Leave calls it receives.
type tracker struct {
	depth int
	max   int
}

func (tr *tracker) Enter(*visitor.Cursor) {
	tr.depth++
	tr.max = max(tr.max, tr.depth)
}

func (tr *tracker) Leave(*visitor.Cursor) { tr.depth-- }

func TestWithTypeInfo_BalancedAcrossSkip(t *testing.T) {
	tr := &tracker{}
	isDog := fieldNamed("dog")
	var depthAtDog int
	v := visitor.Funcs{visitor.Field: {Enter: func(c *visitor.Cursor) visitor.Action {
		if isDog(c) {
			depthAtDog = tr.depth
			return visitor.Skip
		}
		return visitor.Continue
	}}}

	visitor.Walk(language.MustParse(query), visitor.WithTypeInfo(tr, v))

	assert.Zero(t, tr.depth)
	// Document, operation, selection set and the field itself.
	assert.Equal(t, 4, depthAtDog)
	assert.Equal(t, 4, tr.max)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "ObjectTypeExtension", visitor.ObjectTypeExtension.String())
	assert.Equal(t, "Unknown", visitor.Kind(999).String())
	assert.True(t, visitor.EnumTypeDefinition.IsTypeDefinition())
	assert.True(t, visitor.UnionTypeExtension.IsTypeExtension())
	assert.False(t, visitor.UnionTypeExtension.IsTypeDefinition())
	assert.True(t, visitor.Variable.IsValue())
	assert.False(t, visitor.ObjectField.IsValue())

	assert.Equal(t, visitor.ListType, visitor.KindOf(&ast.Type{Elem: &ast.Type{NamedType: "Int"}}))
	assert.Equal(t, visitor.StringValue, visitor.KindOf(&ast.Value{Kind: ast.BlockValue}))
	assert.Equal(t, visitor.InputObjectTypeExtension,
		visitor.TypeDefinitionKind(&ast.Definition{Kind: ast.InputObject}, true))
	assert.Equal(t, "Skip", visitor.Skip.String())
}
