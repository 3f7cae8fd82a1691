// Package validation checks GraphQL documents against the rules of the GraphQL
// specification.
//
// ValidateSDL checks a type-system document on its own. ValidateQuery checks an
// executable document against a schema. Both run every rule in a single walk and
// return all findings; a document is valid when the returned List is empty.
package validation

import (
	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/scalars"
	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

// ValidateSDL runs rules over a type-system document, or DefaultSDLRules when no rules
// are given.
func ValidateSDL(doc *language.Document, rules ...SDLRule) List {
	if doc == nil {
		return List{{Message: "Must provide document."}}
	}
	if len(rules) == 0 {
		rules = DefaultSDLRules()
	}

	ctx := NewASTContext(doc)
	visitors := make([]visitor.Visitor, len(rules))
	for i, rule := range rules {
		visitors[i] = rule.Create(ctx)
	}
	visitor.Walk(doc, visitor.Multiple(visitors...))
	return ctx.Errors()
}

type queryOptions struct {
	rules    []QueryRule
	typeInfo *typeinfo.TypeInfo
	scalars  *scalars.Registry
}

// Option configures ValidateQuery.
type Option func(*queryOptions)

// WithRules replaces the default rule set. An empty list keeps the defaults.
func WithRules(rules ...QueryRule) Option {
	return func(o *queryOptions) {
		o.rules = rules
	}
}

// WithTypeInfo supplies the TypeInfo that follows the walk. It must be fresh.
func WithTypeInfo(ti *typeinfo.TypeInfo) Option {
	return func(o *queryOptions) {
		o.typeInfo = ti
	}
}

// WithScalars supplies the registry used to coerce scalar literals.
func WithScalars(r *scalars.Registry) Option {
	return func(o *queryOptions) {
		o.scalars = r
	}
}

// ValidateQuery runs the query rules over an executable document against schema.
func ValidateQuery(schema *ast.Schema, doc *language.Document, opts ...Option) List {
	var missing List
	if schema == nil {
		missing = append(missing, &Error{Message: "Must provide schema."})
	}
	if doc == nil {
		missing = append(missing, &Error{Message: "Must provide document."})
	}
	if len(missing) > 0 {
		return missing
	}

	o := &queryOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.rules) == 0 {
		o.rules = DefaultQueryRules()
	}
	if o.typeInfo == nil {
		o.typeInfo = typeinfo.New(schema)
	}
	if o.scalars == nil {
		o.scalars = scalars.Default()
	}

	ctx := NewQueryContext(schema, doc, o.typeInfo, o.scalars)
	visitors := make([]visitor.Visitor, len(o.rules))
	for i, rule := range o.rules {
		visitors[i] = rule.Create(ctx)
	}
	visitor.Walk(doc, visitor.WithTypeInfo(o.typeInfo, visitor.Multiple(visitors...)))
	return ctx.Errors()
}
