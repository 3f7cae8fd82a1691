package validation

import (
	"slices"

	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var (
	knownDirectives  = specClause("KnownDirectives", "5.7.1", "Directives-Are-Defined")
	placedDirectives = clause{rule: "KnownDirectives", section: "5.7.2", anchor: "Directives-Are-In-Valid-Locations"}
)

// KnownDirectivesRule reports directives the schema does not define and directives used
// in a location their definition does not allow.
var KnownDirectivesRule = QueryRule{
	Name: "KnownDirectives",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return checkDirectives(ctx.ASTContext, knownDirectives, placedDirectives, func(name string) *ast.DirectiveDefinition {
			return ctx.Schema().Directives[name]
		})
	},
}

// SDLKnownDirectivesRule is KnownDirectivesRule over the directives a type-system
// document defines plus the built-in ones.
var SDLKnownDirectivesRule = SDLRule{
	Name: "KnownDirectives",
	Create: func(ctx *ASTContext) visitor.Visitor {
		cl := sdlClause("KnownDirectives")
		return checkDirectives(ctx, cl, cl, ctx.DirectiveDefinition)
	},
}

func checkDirectives(ctx *ASTContext, unknown, misplaced clause, lookup func(string) *ast.DirectiveDefinition) visitor.Visitor {
	return visitor.Funcs{
		visitor.Directive: {Enter: func(c *visitor.Cursor) visitor.Action {
			dir := c.Node.(*ast.Directive)
			def := lookup(dir.Name)
			if def == nil {
				ctx.report(unknown, "Unknown directive "+quote("@"+dir.Name)+".", dir)
				return visitor.Continue
			}
			if loc, ok := directiveLocation(c); ok && !slices.Contains(def.Locations, loc) {
				ctx.report(misplaced, "Directive "+quote("@"+dir.Name)+" may not be used on "+string(loc)+".", dir)
			}
			return visitor.Continue
		}},
	}
}

// directiveLocation returns where the directive under c is applied.
func directiveLocation(c *visitor.Cursor) (ast.DirectiveLocation, bool) {
	switch parent := c.Parent.(type) {
	case *ast.OperationDefinition:
		switch parent.Operation {
		case ast.Query:
			return ast.LocationQuery, true
		case ast.Mutation:
			return ast.LocationMutation, true
		case ast.Subscription:
			return ast.LocationSubscription, true
		}
	case *ast.Field:
		return ast.LocationField, true
	case *ast.FragmentSpread:
		return ast.LocationFragmentSpread, true
	case *ast.InlineFragment:
		return ast.LocationInlineFragment, true
	case *ast.FragmentDefinition:
		return ast.LocationFragmentDefinition, true
	case *ast.VariableDefinition:
		return ast.LocationVariableDefinition, true
	case *ast.SchemaDefinition:
		return ast.LocationSchema, true
	case *ast.Definition:
		switch parent.Kind {
		case ast.Scalar:
			return ast.LocationScalar, true
		case ast.Object:
			return ast.LocationObject, true
		case ast.Interface:
			return ast.LocationInterface, true
		case ast.Union:
			return ast.LocationUnion, true
		case ast.Enum:
			return ast.LocationEnum, true
		case ast.InputObject:
			return ast.LocationInputObject, true
		}
	case *ast.FieldDefinition:
		ancestors := c.Ancestors()
		if len(ancestors) >= 2 {
			if owner, ok := ancestors[len(ancestors)-2].(*ast.Definition); ok && owner.Kind == ast.InputObject {
				return ast.LocationInputFieldDefinition, true
			}
		}
		return ast.LocationFieldDefinition, true
	case *ast.ArgumentDefinition:
		return ast.LocationArgumentDefinition, true
	case *ast.EnumValueDefinition:
		return ast.LocationEnumValue, true
	}
	return "", false
}

var uniqueDirectivesPerLocation = specClause("UniqueDirectivesPerLocation", "5.7.3", "Directives-Are-Unique-Per-Location")

// UniqueDirectivesPerLocationRule reports non-repeatable directives applied twice to
// the same node.
var UniqueDirectivesPerLocationRule = QueryRule{
	Name: "UniqueDirectivesPerLocation",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return checkUniqueDirectives(ctx.ASTContext, uniqueDirectivesPerLocation, func(name string) *ast.DirectiveDefinition {
			return ctx.Schema().Directives[name]
		})
	},
}

// SDLUniqueDirectivesPerLocationRule is UniqueDirectivesPerLocationRule for type-system
// documents. Directives on a type and on its extensions count as one location.
var SDLUniqueDirectivesPerLocationRule = SDLRule{
	Name: "UniqueDirectivesPerLocation",
	Create: func(ctx *ASTContext) visitor.Visitor {
		return checkUniqueDirectives(ctx, sdlClause("UniqueDirectivesPerLocation"), ctx.DirectiveDefinition)
	},
}

type uniqueDirectives struct {
	visitor.Base
	ctx      *ASTContext
	cl       clause
	lookup   func(string) *ast.DirectiveDefinition
	schema   map[string]*ast.Directive
	perTypes map[string]map[string]*ast.Directive
}

func checkUniqueDirectives(ctx *ASTContext, cl clause, lookup func(string) *ast.DirectiveDefinition) visitor.Visitor {
	return &uniqueDirectives{
		ctx:      ctx,
		cl:       cl,
		lookup:   lookup,
		schema:   map[string]*ast.Directive{},
		perTypes: map[string]map[string]*ast.Directive{},
	}
}

func (u *uniqueDirectives) Enter(c *visitor.Cursor) visitor.Action {
	directives := directivesOf(c.Node)
	if len(directives) == 0 {
		return visitor.Continue
	}

	var seen map[string]*ast.Directive
	switch node := c.Node.(type) {
	case *ast.SchemaDefinition:
		seen = u.schema
	case *ast.Definition:
		seen = u.perTypes[node.Name]
		if seen == nil {
			seen = map[string]*ast.Directive{}
			u.perTypes[node.Name] = seen
		}
	default:
		seen = map[string]*ast.Directive{}
	}

	for _, dir := range directives {
		def := u.lookup(dir.Name)
		if def == nil || def.IsRepeatable {
			continue
		}
		if first, ok := seen[dir.Name]; ok {
			u.ctx.report(u.cl, "The directive "+quote("@"+dir.Name)+" can only be used once at this location.", first, dir)
		} else {
			seen[dir.Name] = dir
		}
	}
	return visitor.Continue
}

func directivesOf(node any) ast.DirectiveList {
	switch n := node.(type) {
	case *ast.OperationDefinition:
		return n.Directives
	case *ast.VariableDefinition:
		return n.Directives
	case *ast.Field:
		return n.Directives
	case *ast.FragmentSpread:
		return n.Directives
	case *ast.InlineFragment:
		return n.Directives
	case *ast.FragmentDefinition:
		return n.Directives
	case *ast.SchemaDefinition:
		return n.Directives
	case *ast.Definition:
		return n.Directives
	case *ast.FieldDefinition:
		return n.Directives
	case *ast.ArgumentDefinition:
		return n.Directives
	case *ast.EnumValueDefinition:
		return n.Directives
	}
	return nil
}
