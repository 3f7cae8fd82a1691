package validation

import (
	"slices"
	"sync"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/scalars"
	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// prelude holds the built-in scalars, directives and introspection types.
var prelude = sync.OnceValue(func() *ast.SchemaDocument {
	doc, err := parser.ParseSchema(validator.Prelude)
	if err != nil {
		panic("validation: parsing the gqlparser prelude: " + err.Error())
	}
	return doc
})

// ASTContext is the state of one validation run over a document. It is all SDL rules
// get to see.
type ASTContext struct {
	doc    *language.Document
	errors List

	fragments       map[string]*ast.FragmentDefinition
	fragmentSpreads map[any][]*ast.FragmentSpread
	referenced      map[any][]*ast.FragmentDefinition

	definedTypes  map[string]*ast.Definition
	typeOrder     []string
	extensions    map[string][]*ast.Definition
	directiveDefs map[string]*ast.DirectiveDefinition
	mergedTypes   map[string]*ast.Definition
}

// NewASTContext returns a context for validating doc without a schema.
func NewASTContext(doc *language.Document) *ASTContext {
	return &ASTContext{doc: doc}
}

// Document returns the document under validation.
func (c *ASTContext) Document() *language.Document { return c.doc }

// ReportError records a validation error.
func (c *ASTContext) ReportError(err *Error) {
	c.errors = append(c.errors, err)
}

// Errors returns the errors reported so far.
func (c *ASTContext) Errors() List { return c.errors }

func (c *ASTContext) report(cl clause, message string, nodes ...any) {
	c.ReportError(&Error{
		Message:    message,
		Locations:  locations(nodes),
		Extensions: cl.extensions(),
		Rule:       cl.rule,
	})
}

// Fragment returns the fragment named name, or nil. The first definition wins when a
// name is defined twice.
func (c *ASTContext) Fragment(name string) *ast.FragmentDefinition {
	if c.fragments == nil {
		c.fragments = make(map[string]*ast.FragmentDefinition, len(c.doc.Query.Fragments))
		for _, frag := range c.doc.Query.Fragments {
			if _, ok := c.fragments[frag.Name]; !ok {
				c.fragments[frag.Name] = frag
			}
		}
	}
	return c.fragments[name]
}

// FragmentSpreads returns every fragment spread inside an operation or fragment
// definition, including those nested in inline fragments.
func (c *ASTContext) FragmentSpreads(def any) []*ast.FragmentSpread {
	if spreads, ok := c.fragmentSpreads[def]; ok {
		return spreads
	}
	if c.fragmentSpreads == nil {
		c.fragmentSpreads = map[any][]*ast.FragmentSpread{}
	}

	var spreads []*ast.FragmentSpread
	stack := []ast.SelectionSet{selectionSetOf(def)}
	for len(stack) > 0 {
		set := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.FragmentSpread:
				spreads = append(spreads, sel)
			case *ast.Field:
				if len(sel.SelectionSet) > 0 {
					stack = append(stack, sel.SelectionSet)
				}
			case *ast.InlineFragment:
				stack = append(stack, sel.SelectionSet)
			}
		}
	}
	c.fragmentSpreads[def] = spreads
	return spreads
}

// RecursivelyReferencedFragments returns the fragments an operation or fragment
// definition reaches through spreads, each once, in discovery order. Cycles and unknown
// fragments are tolerated.
func (c *ASTContext) RecursivelyReferencedFragments(def any) []*ast.FragmentDefinition {
	if frags, ok := c.referenced[def]; ok {
		return frags
	}
	if c.referenced == nil {
		c.referenced = map[any][]*ast.FragmentDefinition{}
	}

	var frags []*ast.FragmentDefinition
	collected := map[string]bool{}
	if frag, ok := def.(*ast.FragmentDefinition); ok {
		collected[frag.Name] = true
	}
	toVisit := []any{def}
	for len(toVisit) > 0 {
		next := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		for _, spread := range c.FragmentSpreads(next) {
			if collected[spread.Name] {
				continue
			}
			collected[spread.Name] = true
			if frag := c.Fragment(spread.Name); frag != nil {
				frags = append(frags, frag)
				toVisit = append(toVisit, frag)
			}
		}
	}
	c.referenced[def] = frags
	return frags
}

func selectionSetOf(def any) ast.SelectionSet {
	switch d := def.(type) {
	case *ast.OperationDefinition:
		return d.SelectionSet
	case *ast.FragmentDefinition:
		return d.SelectionSet
	}
	return nil
}

func (c *ASTContext) indexTypeSystem() {
	if c.definedTypes != nil {
		return
	}
	c.definedTypes = map[string]*ast.Definition{}
	c.extensions = map[string][]*ast.Definition{}
	c.directiveDefs = map[string]*ast.DirectiveDefinition{}
	for _, def := range c.doc.Schema.Definitions {
		if _, ok := c.definedTypes[def.Name]; !ok {
			c.definedTypes[def.Name] = def
			c.typeOrder = append(c.typeOrder, def.Name)
		}
	}
	for _, ext := range c.doc.Schema.Extensions {
		c.extensions[ext.Name] = append(c.extensions[ext.Name], ext)
	}
	for _, dir := range c.doc.Schema.Directives {
		if _, ok := c.directiveDefs[dir.Name]; !ok {
			c.directiveDefs[dir.Name] = dir
		}
	}
}

// TypeDefinition returns the first definition of the type name in the document, or nil.
func (c *ASTContext) TypeDefinition(name string) *ast.Definition {
	c.indexTypeSystem()
	return c.definedTypes[name]
}

// TypeExtensions returns the extensions of the type name in the document.
func (c *ASTContext) TypeExtensions(name string) []*ast.Definition {
	c.indexTypeSystem()
	return c.extensions[name]
}

// BuiltinType returns a built-in scalar or introspection type, or nil.
func BuiltinType(name string) *ast.Definition {
	return prelude().Definitions.ForName(name)
}

// DirectiveDefinition returns the directive name as defined in the document, falling
// back to the built-in directives.
func (c *ASTContext) DirectiveDefinition(name string) *ast.DirectiveDefinition {
	c.indexTypeSystem()
	if def, ok := c.directiveDefs[name]; ok {
		return def
	}
	return prelude().Directives.ForName(name)
}

// DirectiveDefinitions returns the directives of the document followed by the built-in
// directives the document does not redefine.
func (c *ASTContext) DirectiveDefinitions() []*ast.DirectiveDefinition {
	c.indexTypeSystem()
	var defs []*ast.DirectiveDefinition
	for _, def := range c.doc.Schema.Directives {
		if c.directiveDefs[def.Name] == def {
			defs = append(defs, def)
		}
	}
	for _, def := range prelude().Directives {
		if _, ok := c.directiveDefs[def.Name]; !ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// TypeSchema returns a schema view of the document's type system: the built-in types
// plus every type defined in the document with its extensions folded in. Only Types is
// populated. Extensions of undefined types are ignored.
func (c *ASTContext) TypeSchema() *ast.Schema {
	if c.mergedTypes == nil {
		c.indexTypeSystem()
		c.mergedTypes = map[string]*ast.Definition{}
		for _, def := range prelude().Definitions {
			c.mergedTypes[def.Name] = def
		}
		for _, name := range c.typeOrder {
			def := *c.definedTypes[name]
			def.Directives = slices.Clone(def.Directives)
			def.Interfaces = slices.Clone(def.Interfaces)
			def.Fields = slices.Clone(def.Fields)
			def.Types = slices.Clone(def.Types)
			def.EnumValues = slices.Clone(def.EnumValues)
			for _, ext := range c.extensions[name] {
				if ext.Kind != def.Kind {
					continue
				}
				def.Directives = append(def.Directives, ext.Directives...)
				def.Interfaces = append(def.Interfaces, ext.Interfaces...)
				def.Fields = append(def.Fields, ext.Fields...)
				def.Types = append(def.Types, ext.Types...)
				def.EnumValues = append(def.EnumValues, ext.EnumValues...)
			}
			c.mergedTypes[name] = &def
		}
	}
	return &ast.Schema{Types: c.mergedTypes}
}

// DocumentTypeNames returns the names of the types defined in the document, in order.
func (c *ASTContext) DocumentTypeNames() []string {
	c.indexTypeSystem()
	return c.typeOrder
}

// VariableUsage is a variable reference found in an operation or fragment together with
// the input type expected where it appears.
type VariableUsage struct {
	Node         *ast.Value
	Type         *ast.Type
	DefaultValue *ast.Value
	// ParentType is the input type of the enclosing value, if any.
	ParentType *ast.Type
}

// QueryContext is the state of one validation run of an executable document against a
// schema.
type QueryContext struct {
	*ASTContext

	schema   *ast.Schema
	typeInfo *typeinfo.TypeInfo
	scalars  *scalars.Registry

	variableUsages          map[any][]VariableUsage
	recursiveVariableUsages map[any][]VariableUsage
}

// NewQueryContext returns a context for validating doc against schema.
func NewQueryContext(schema *ast.Schema, doc *language.Document, ti *typeinfo.TypeInfo, registry *scalars.Registry) *QueryContext {
	return &QueryContext{
		ASTContext: NewASTContext(doc),
		schema:     schema,
		typeInfo:   ti,
		scalars:    registry,
	}
}

// Schema returns the schema the document is validated against.
func (c *QueryContext) Schema() *ast.Schema { return c.schema }

// TypeInfo returns the tracker that follows the validation walk.
func (c *QueryContext) TypeInfo() *typeinfo.TypeInfo { return c.typeInfo }

// Scalars returns the scalar coercion registry.
func (c *QueryContext) Scalars() *scalars.Registry { return c.scalars }

// VariableUsages returns the variables used directly in an operation or fragment
// definition, in document order. Variable definitions are not usages.
func (c *QueryContext) VariableUsages(def any) []VariableUsage {
	if usages, ok := c.variableUsages[def]; ok {
		return usages
	}
	if c.variableUsages == nil {
		c.variableUsages = map[any][]VariableUsage{}
	}

	var usages []VariableUsage
	ti := typeinfo.New(c.schema)
	visitor.Walk(def, visitor.WithTypeInfo(ti, visitor.Funcs{
		visitor.VariableDefinition: {Enter: func(*visitor.Cursor) visitor.Action {
			return visitor.Skip
		}},
		visitor.Variable: {Enter: func(cur *visitor.Cursor) visitor.Action {
			usages = append(usages, VariableUsage{
				Node:         cur.Node.(*ast.Value),
				Type:         ti.InputType(),
				DefaultValue: ti.DefaultValue(),
				ParentType:   ti.ParentInputType(),
			})
			return visitor.Continue
		}},
	}))
	c.variableUsages[def] = usages
	return usages
}

// RecursiveVariableUsages returns the usages of an operation or fragment definition and
// of every fragment it reaches.
func (c *QueryContext) RecursiveVariableUsages(def any) []VariableUsage {
	if usages, ok := c.recursiveVariableUsages[def]; ok {
		return usages
	}
	if c.recursiveVariableUsages == nil {
		c.recursiveVariableUsages = map[any][]VariableUsage{}
	}

	usages := append([]VariableUsage(nil), c.VariableUsages(def)...)
	for _, frag := range c.RecursivelyReferencedFragments(def) {
		usages = append(usages, c.VariableUsages(frag)...)
	}
	c.recursiveVariableUsages[def] = usages
	return usages
}
