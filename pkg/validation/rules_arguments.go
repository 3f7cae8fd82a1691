package validation

import (
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var knownArgumentNames = specClause("KnownArgumentNames", "5.4.1", "Argument-Names")

// KnownArgumentNamesRule reports arguments a field or directive does not define.
var KnownArgumentNamesRule = QueryRule{
	Name: "KnownArgumentNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		ti := ctx.TypeInfo()
		onDirectives := checkDirectiveArgumentNames(ctx.ASTContext, knownArgumentNames, func(name string) *ast.DirectiveDefinition {
			return ctx.Schema().Directives[name]
		})
		return visitor.Funcs{
			visitor.Directive: onDirectives[visitor.Directive],
			visitor.Argument: {Enter: func(c *visitor.Cursor) visitor.Action {
				fieldDef, parent := ti.FieldDef(), ti.ParentType()
				if ti.Argument() != nil || fieldDef == nil || parent == nil {
					return visitor.Continue
				}
				arg := c.Node.(*ast.Argument)
				ctx.report(knownArgumentNames, "Unknown argument "+quote(arg.Name)+" on field "+
					quote(parent.Name+"."+fieldDef.Name)+"."+
					didYouMean(SuggestionList(arg.Name, argumentNames(fieldDef.Arguments))), arg)
				return visitor.Continue
			}},
		}
	},
}

// KnownArgumentNamesOnDirectivesRule reports directive arguments the directive does not
// define, in type-system documents.
var KnownArgumentNamesOnDirectivesRule = SDLRule{
	Name: "KnownArgumentNamesOnDirectives",
	Create: func(ctx *ASTContext) visitor.Visitor {
		return checkDirectiveArgumentNames(ctx, sdlClause("KnownArgumentNamesOnDirectives"), ctx.DirectiveDefinition)
	},
}

func checkDirectiveArgumentNames(ctx *ASTContext, cl clause, lookup func(string) *ast.DirectiveDefinition) visitor.Funcs {
	return visitor.Funcs{
		visitor.Directive: {Enter: func(c *visitor.Cursor) visitor.Action {
			dir := c.Node.(*ast.Directive)
			def := lookup(dir.Name)
			if def == nil {
				return visitor.Skip
			}
			known := argumentNames(def.Arguments)
			for _, arg := range dir.Arguments {
				if def.Arguments.ForName(arg.Name) != nil {
					continue
				}
				ctx.report(cl, "Unknown argument "+quote(arg.Name)+" on directive "+quote("@"+dir.Name)+"."+
					didYouMean(SuggestionList(arg.Name, known)), arg)
			}
			return visitor.Skip
		}},
	}
}

func argumentNames(defs ast.ArgumentDefinitionList) []string {
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

var uniqueArgumentNames = specClause("UniqueArgumentNames", "5.4.2", "Argument-Uniqueness")

// UniqueArgumentNamesRule reports an argument given twice to one field or directive.
var UniqueArgumentNamesRule = QueryRule{
	Name: "UniqueArgumentNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return checkUniqueArguments(ctx.ASTContext, uniqueArgumentNames)
	},
}

// SDLUniqueArgumentNamesRule is UniqueArgumentNamesRule for directives in type-system
// documents.
var SDLUniqueArgumentNamesRule = SDLRule{
	Name: "UniqueArgumentNames",
	Create: func(ctx *ASTContext) visitor.Visitor {
		return checkUniqueArguments(ctx, sdlClause("UniqueArgumentNames"))
	},
}

func checkUniqueArguments(ctx *ASTContext, cl clause) visitor.Visitor {
	check := func(args ast.ArgumentList) {
		known := map[string]*ast.Argument{}
		for _, arg := range args {
			if first, ok := known[arg.Name]; ok {
				ctx.report(cl, "There can be only one argument named "+quote(arg.Name)+".", first, arg)
			} else {
				known[arg.Name] = arg
			}
		}
	}
	return visitor.Funcs{
		visitor.Field: {Enter: func(c *visitor.Cursor) visitor.Action {
			check(c.Node.(*ast.Field).Arguments)
			return visitor.Continue
		}},
		visitor.Directive: {Enter: func(c *visitor.Cursor) visitor.Action {
			check(c.Node.(*ast.Directive).Arguments)
			return visitor.Continue
		}},
	}
}

var providedRequiredArguments = specClause("ProvidedRequiredArguments", "5.4.2.1", "Required-Arguments")

// ProvidedRequiredArgumentsRule reports required arguments missing from a field or
// directive. An argument is required when it is non-null and has no default.
var ProvidedRequiredArgumentsRule = QueryRule{
	Name: "ProvidedRequiredArguments",
	Create: func(ctx *QueryContext) visitor.Visitor {
		ti := ctx.TypeInfo()
		onDirectives := checkRequiredDirectiveArguments(ctx.ASTContext, providedRequiredArguments, func(name string) *ast.DirectiveDefinition {
			return ctx.Schema().Directives[name]
		})
		return visitor.Funcs{
			visitor.Directive: onDirectives[visitor.Directive],
			visitor.Field: {Leave: func(c *visitor.Cursor) visitor.Action {
				fieldDef, parent := ti.FieldDef(), ti.ParentType()
				if fieldDef == nil || parent == nil {
					return visitor.Continue
				}
				field := c.Node.(*ast.Field)
				for _, def := range missingArguments(fieldDef.Arguments, field.Arguments) {
					ctx.report(providedRequiredArguments, "Argument "+quote(parent.Name+"."+fieldDef.Name+"("+def.Name+":)")+
						" of type "+quote(def.Type.String())+" is required, but it was not provided.", field)
				}
				return visitor.Continue
			}},
		}
	},
}

// ProvidedRequiredArgumentsOnDirectivesRule reports required directive arguments
// missing in type-system documents.
var ProvidedRequiredArgumentsOnDirectivesRule = SDLRule{
	Name: "ProvidedRequiredArgumentsOnDirectives",
	Create: func(ctx *ASTContext) visitor.Visitor {
		return checkRequiredDirectiveArguments(ctx, sdlClause("ProvidedRequiredArgumentsOnDirectives"), ctx.DirectiveDefinition)
	},
}

func checkRequiredDirectiveArguments(ctx *ASTContext, cl clause, lookup func(string) *ast.DirectiveDefinition) visitor.Funcs {
	return visitor.Funcs{
		visitor.Directive: {Leave: func(c *visitor.Cursor) visitor.Action {
			dir := c.Node.(*ast.Directive)
			def := lookup(dir.Name)
			if def == nil {
				return visitor.Continue
			}
			for _, arg := range missingArguments(def.Arguments, dir.Arguments) {
				ctx.report(cl, "Argument "+quote("@"+dir.Name+"("+arg.Name+":)")+
					" of type "+quote(arg.Type.String())+" is required, but it was not provided.", dir)
			}
			return visitor.Continue
		}},
	}
}

// missingArguments returns the required definitions without a matching argument.
func missingArguments(defs ast.ArgumentDefinitionList, args ast.ArgumentList) []*ast.ArgumentDefinition {
	var missing []*ast.ArgumentDefinition
	for _, def := range defs {
		if def.Type.NonNull && def.DefaultValue == nil && args.ForName(def.Name) == nil {
			missing = append(missing, def)
		}
	}
	return missing
}
