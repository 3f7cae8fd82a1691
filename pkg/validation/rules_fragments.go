package validation

import (
	"strings"

	"github.com/samwightt/gqlvet/pkg/typeinfo"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var uniqueFragmentNames = specClause("UniqueFragmentNames", "5.5.1.1", "Fragment-Name-Uniqueness")

// UniqueFragmentNamesRule reports fragments sharing a name.
var UniqueFragmentNamesRule = QueryRule{
	Name: "UniqueFragmentNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		known := map[string]*ast.FragmentDefinition{}
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: skip},
			visitor.FragmentDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				frag := c.Node.(*ast.FragmentDefinition)
				if first, ok := known[frag.Name]; ok {
					ctx.report(uniqueFragmentNames,
						"There can be only one fragment named "+quote(frag.Name)+".", first, frag)
				} else {
					known[frag.Name] = frag
				}
				return visitor.Skip
			}},
		}
	},
}

var knownFragmentNames = specClause("KnownFragmentNames", "5.5.2.1", "Fragment-spread-target-defined")

// KnownFragmentNamesRule reports spreads of fragments the document does not define.
var KnownFragmentNamesRule = QueryRule{
	Name: "KnownFragmentNames",
	Create: func(ctx *QueryContext) visitor.Visitor {
		return visitor.Funcs{
			visitor.FragmentSpread: {Enter: func(c *visitor.Cursor) visitor.Action {
				spread := c.Node.(*ast.FragmentSpread)
				if ctx.Fragment(spread.Name) == nil {
					ctx.report(knownFragmentNames, "Unknown fragment "+quote(spread.Name)+".", spread)
				}
				return visitor.Continue
			}},
		}
	},
}

var noUnusedFragments = specClause("NoUnusedFragments", "5.5.1.4", "Fragments-Must-Be-Used")

// NoUnusedFragmentsRule reports fragments no operation reaches.
var NoUnusedFragmentsRule = QueryRule{
	Name: "NoUnusedFragments",
	Create: func(ctx *QueryContext) visitor.Visitor {
		var operations []*ast.OperationDefinition
		var fragments []*ast.FragmentDefinition
		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				operations = append(operations, c.Node.(*ast.OperationDefinition))
				return visitor.Skip
			}},
			visitor.FragmentDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				fragments = append(fragments, c.Node.(*ast.FragmentDefinition))
				return visitor.Skip
			}},
			visitor.Document: {Leave: func(*visitor.Cursor) visitor.Action {
				used := map[string]bool{}
				for _, op := range operations {
					for _, frag := range ctx.RecursivelyReferencedFragments(op) {
						used[frag.Name] = true
					}
				}
				for _, frag := range fragments {
					if !used[frag.Name] {
						ctx.report(noUnusedFragments, "Fragment "+quote(frag.Name)+" is never used.", frag)
					}
				}
				return visitor.Continue
			}},
		}
	},
}

var possibleFragmentSpreads = specClause("PossibleFragmentSpreads", "5.5.2.3", "Fragment-spread-is-possible")

// PossibleFragmentSpreadsRule reports fragments spread where their type condition can
// never apply.
var PossibleFragmentSpreadsRule = QueryRule{
	Name: "PossibleFragmentSpreads",
	Create: func(ctx *QueryContext) visitor.Visitor {
		ti := ctx.TypeInfo()
		schema := ctx.Schema()
		impossible := func(condition string) (*ast.Definition, *ast.Definition, bool) {
			fragType := schema.Types[condition]
			parentType := ti.ParentType()
			if fragType == nil || parentType == nil || !fragType.IsCompositeType() || !parentType.IsCompositeType() {
				return nil, nil, false
			}
			return fragType, parentType, !typeinfo.DoTypesOverlap(schema, fragType, parentType)
		}
		return visitor.Funcs{
			visitor.InlineFragment: {Enter: func(c *visitor.Cursor) visitor.Action {
				frag := c.Node.(*ast.InlineFragment)
				if frag.TypeCondition == "" {
					return visitor.Continue
				}
				if fragType, parentType, bad := impossible(frag.TypeCondition); bad {
					ctx.report(possibleFragmentSpreads, "Fragment cannot be spread here as objects of type "+
						quote(parentType.Name)+" can never be of type "+quote(fragType.Name)+".", frag)
				}
				return visitor.Continue
			}},
			visitor.FragmentSpread: {Enter: func(c *visitor.Cursor) visitor.Action {
				spread := c.Node.(*ast.FragmentSpread)
				frag := ctx.Fragment(spread.Name)
				if frag == nil {
					return visitor.Continue
				}
				if fragType, parentType, bad := impossible(frag.TypeCondition); bad {
					ctx.report(possibleFragmentSpreads, "Fragment "+quote(spread.Name)+" cannot be spread here as objects of type "+
						quote(parentType.Name)+" can never be of type "+quote(fragType.Name)+".", spread)
				}
				return visitor.Continue
			}},
		}
	},
}

var noFragmentCycles = specClause("NoFragmentCycles", "5.5.2.2", "Fragment-spreads-must-not-form-cycles")

// NoFragmentCyclesRule reports fragments that spread themselves, directly or through
// other fragments. Each fragment is explored once, so every cycle is reported once.
var NoFragmentCyclesRule = QueryRule{
	Name: "NoFragmentCycles",
	Create: func(ctx *QueryContext) visitor.Visitor {
		visited := map[string]bool{}
		var spreadPath []*ast.FragmentSpread
		pathIndex := map[string]int{}

		var detect func(frag *ast.FragmentDefinition)
		detect = func(frag *ast.FragmentDefinition) {
			if visited[frag.Name] {
				return
			}
			visited[frag.Name] = true

			spreads := ctx.FragmentSpreads(frag)
			if len(spreads) == 0 {
				return
			}

			pathIndex[frag.Name] = len(spreadPath)
			for _, spread := range spreads {
				cycleIndex, onPath := pathIndex[spread.Name]
				spreadPath = append(spreadPath, spread)
				if !onPath {
					if next := ctx.Fragment(spread.Name); next != nil {
						detect(next)
					}
				} else {
					cycle := spreadPath[cycleIndex:]
					via := make([]string, 0, len(cycle)-1)
					for _, s := range cycle[:len(cycle)-1] {
						via = append(via, quote(s.Name))
					}
					msg := "Cannot spread fragment " + quote(spread.Name) + " within itself"
					if len(via) > 0 {
						msg += " via " + strings.Join(via, ", ")
					}
					ctx.report(noFragmentCycles, msg+".", anySlice(cycle)...)
				}
				spreadPath = spreadPath[:len(spreadPath)-1]
			}
			delete(pathIndex, frag.Name)
		}

		return visitor.Funcs{
			visitor.OperationDefinition: {Enter: skip},
			visitor.FragmentDefinition: {Enter: func(c *visitor.Cursor) visitor.Action {
				detect(c.Node.(*ast.FragmentDefinition))
				return visitor.Skip
			}},
		}
	},
}
