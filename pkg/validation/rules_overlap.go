package validation

import (
	"strings"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/visitor"
	"github.com/vektah/gqlparser/v2/ast"
)

var overlappingFieldsCanBeMerged = specClause("OverlappingFieldsCanBeMerged", "5.3.2", "Field-Selection-Merging")

// OverlappingFieldsCanBeMergedRule reports fields sharing a response key that cannot
// be merged into one result: different fields, differing arguments, or conflicting
// return types, following fragments and sub-selections.
var OverlappingFieldsCanBeMergedRule = QueryRule{
	Name: "OverlappingFieldsCanBeMerged",
	Create: func(ctx *QueryContext) visitor.Visitor {
		o := &overlap{
			ctx:      ctx,
			schema:   ctx.Schema(),
			cache:    map[*ast.Selection]*fieldsAndFragments{},
			compared: pairSet{},
		}
		ti := ctx.TypeInfo()
		return visitor.Funcs{
			visitor.SelectionSet: {Enter: func(c *visitor.Cursor) visitor.Action {
				for _, cf := range o.conflictsWithin(ti.ParentType(), c.Node.(ast.SelectionSet)) {
					ctx.report(overlappingFieldsCanBeMerged, "Fields "+quote(cf.responseName)+" conflict because "+
						cf.reasonMessage()+". Use different aliases on the fields to fetch both if this was intentional.",
						cf.nodes()...)
				}
				return visitor.Continue
			}},
		}
	},
}

type fieldEntry struct {
	parent *ast.Definition
	node   *ast.Field
	def    *ast.FieldDefinition
}

// fieldsAndFragments is a selection set flattened by response key, with the names of
// the fragments it spreads.
type fieldsAndFragments struct {
	keys      []string
	fields    map[string][]fieldEntry
	fragments []string
}

type conflict struct {
	responseName string
	reason       string
	subs         []conflict
	node1, node2 *ast.Field
}

func (c conflict) reasonMessage() string {
	if len(c.subs) == 0 {
		return c.reason
	}
	parts := make([]string, len(c.subs))
	for i, sub := range c.subs {
		parts[i] = "subfields " + quote(sub.responseName) + " conflict because " + sub.reasonMessage()
	}
	return strings.Join(parts, " and ")
}

// nodes returns the two conflicting fields followed by the fields of nested conflicts.
func (c conflict) nodes() []any {
	nodes := []any{c.node1, c.node2}
	for _, sub := range c.subs {
		nodes = append(nodes, sub.nodes()...)
	}
	return nodes
}

// pairSet remembers which fragment pairs were compared and whether the comparison
// assumed mutually exclusive parents.
type pairSet map[[2]string]bool

func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}

func (p pairSet) has(a, b string, mutuallyExclusive bool) bool {
	exclusive, ok := p[pairKey(a, b)]
	if !ok {
		return false
	}
	// A comparison without exclusivity covers one with it.
	return mutuallyExclusive || !exclusive
}

func (p pairSet) add(a, b string, mutuallyExclusive bool) {
	p[pairKey(a, b)] = mutuallyExclusive
}

type overlap struct {
	ctx      *QueryContext
	schema   *ast.Schema
	cache    map[*ast.Selection]*fieldsAndFragments
	compared pairSet
}

func (o *overlap) conflictsWithin(parent *ast.Definition, set ast.SelectionSet) []conflict {
	var conflicts []conflict
	fm := o.fieldsAndFragments(parent, set)

	for _, key := range fm.keys {
		fields := fm.fields[key]
		for i := range fields {
			for j := i + 1; j < len(fields); j++ {
				if cf, ok := o.findConflict(false, key, fields[i], fields[j]); ok {
					conflicts = append(conflicts, cf)
				}
			}
		}
	}

	for i, name := range fm.fragments {
		conflicts = o.betweenFieldsAndFragment(conflicts, false, fm, name)
		for _, other := range fm.fragments[i+1:] {
			conflicts = o.betweenFragments(conflicts, false, name, other)
		}
	}
	return conflicts
}

func (o *overlap) betweenFieldsAndFragment(conflicts []conflict, exclusive bool, fm *fieldsAndFragments, fragmentName string) []conflict {
	frag := o.ctx.Fragment(fragmentName)
	if frag == nil {
		return conflicts
	}
	fm2 := o.fragmentFields(frag)
	if fm == fm2 {
		return conflicts
	}
	conflicts = o.between(conflicts, exclusive, fm, fm2)

	for _, referenced := range fm2.fragments {
		if o.compared.has(referenced, fragmentName, exclusive) {
			continue
		}
		o.compared.add(referenced, fragmentName, exclusive)
		conflicts = o.betweenFieldsAndFragment(conflicts, exclusive, fm, referenced)
	}
	return conflicts
}

func (o *overlap) betweenFragments(conflicts []conflict, exclusive bool, name1, name2 string) []conflict {
	if name1 == name2 || o.compared.has(name1, name2, exclusive) {
		return conflicts
	}
	o.compared.add(name1, name2, exclusive)

	frag1, frag2 := o.ctx.Fragment(name1), o.ctx.Fragment(name2)
	if frag1 == nil || frag2 == nil {
		return conflicts
	}
	fm1, fm2 := o.fragmentFields(frag1), o.fragmentFields(frag2)
	conflicts = o.between(conflicts, exclusive, fm1, fm2)
	for _, ref := range fm2.fragments {
		conflicts = o.betweenFragments(conflicts, exclusive, name1, ref)
	}
	for _, ref := range fm1.fragments {
		conflicts = o.betweenFragments(conflicts, exclusive, ref, name2)
	}
	return conflicts
}

func (o *overlap) betweenSubSelections(exclusive bool, parent1 *ast.Definition, set1 ast.SelectionSet, parent2 *ast.Definition, set2 ast.SelectionSet) []conflict {
	var conflicts []conflict
	fm1 := o.fieldsAndFragments(parent1, set1)
	fm2 := o.fieldsAndFragments(parent2, set2)

	conflicts = o.between(conflicts, exclusive, fm1, fm2)
	for _, name := range fm2.fragments {
		conflicts = o.betweenFieldsAndFragment(conflicts, exclusive, fm1, name)
	}
	for _, name := range fm1.fragments {
		conflicts = o.betweenFieldsAndFragment(conflicts, exclusive, fm2, name)
	}
	for _, name1 := range fm1.fragments {
		for _, name2 := range fm2.fragments {
			conflicts = o.betweenFragments(conflicts, exclusive, name1, name2)
		}
	}
	return conflicts
}

func (o *overlap) between(conflicts []conflict, exclusive bool, fm1, fm2 *fieldsAndFragments) []conflict {
	for _, key := range fm1.keys {
		fields2, ok := fm2.fields[key]
		if !ok {
			continue
		}
		for _, f1 := range fm1.fields[key] {
			for _, f2 := range fields2 {
				if cf, ok := o.findConflict(exclusive, key, f1, f2); ok {
					conflicts = append(conflicts, cf)
				}
			}
		}
	}
	return conflicts
}

func (o *overlap) findConflict(parentsExclusive bool, responseName string, f1, f2 fieldEntry) (conflict, bool) {
	// Fields on two different object types can never both apply to one result.
	exclusive := parentsExclusive || (f1.parent != nil && f2.parent != nil &&
		f1.parent.Name != f2.parent.Name && f1.parent.Kind == ast.Object && f2.parent.Kind == ast.Object)

	cf := conflict{responseName: responseName, node1: f1.node, node2: f2.node}
	if !exclusive {
		if f1.node.Name != f2.node.Name {
			cf.reason = quote(f1.node.Name) + " and " + quote(f2.node.Name) + " are different fields"
			return cf, true
		}
		if !sameArguments(f1.node.Arguments, f2.node.Arguments) {
			cf.reason = "they have differing arguments"
			return cf, true
		}
	}

	var type1, type2 *ast.Type
	if f1.def != nil {
		type1 = f1.def.Type
	}
	if f2.def != nil {
		type2 = f2.def.Type
	}
	if type1 != nil && type2 != nil && o.doTypesConflict(type1, type2) {
		cf.reason = "they return conflicting types " + quote(type1.String()) + " and " + quote(type2.String())
		return cf, true
	}

	if len(f1.node.SelectionSet) > 0 && len(f2.node.SelectionSet) > 0 {
		cf.subs = o.betweenSubSelections(exclusive,
			o.namedDefinition(type1), f1.node.SelectionSet,
			o.namedDefinition(type2), f2.node.SelectionSet)
		if len(cf.subs) > 0 {
			return cf, true
		}
	}
	return conflict{}, false
}

func (o *overlap) namedDefinition(t *ast.Type) *ast.Definition {
	if t == nil {
		return nil
	}
	return o.schema.Types[t.Name()]
}

// doTypesConflict reports whether two field types would produce results of a different
// shape. Non-null is an attribute here, so it is compared before list wrapping.
func (o *overlap) doTypesConflict(t1, t2 *ast.Type) bool {
	if t1.NonNull || t2.NonNull {
		if t1.NonNull && t2.NonNull {
			return o.doTypesConflict(nonNullStripped(t1), nonNullStripped(t2))
		}
		return true
	}
	if t1.Elem != nil || t2.Elem != nil {
		if t1.Elem != nil && t2.Elem != nil {
			return o.doTypesConflict(t1.Elem, t2.Elem)
		}
		return true
	}
	def1, def2 := o.namedDefinition(t1), o.namedDefinition(t2)
	if (def1 != nil && def1.IsLeafType()) || (def2 != nil && def2.IsLeafType()) {
		return t1.NamedType != t2.NamedType
	}
	return false
}

func nonNullStripped(t *ast.Type) *ast.Type {
	stripped := *t
	stripped.NonNull = false
	return &stripped
}

// sameArguments compares argument sets by name and printed value, in any order.
func sameArguments(args1, args2 ast.ArgumentList) bool {
	if len(args1) != len(args2) {
		return false
	}
	for _, arg1 := range args1 {
		arg2 := args2.ForName(arg1.Name)
		if arg2 == nil || language.PrintValue(arg1.Value) != language.PrintValue(arg2.Value) {
			return false
		}
	}
	return true
}

func (o *overlap) fragmentFields(frag *ast.FragmentDefinition) *fieldsAndFragments {
	return o.fieldsAndFragments(o.schema.Types[frag.TypeCondition], frag.SelectionSet)
}

// fieldsAndFragments flattens set by response key. Results are cached per selection
// set.
func (o *overlap) fieldsAndFragments(parent *ast.Definition, set ast.SelectionSet) *fieldsAndFragments {
	if len(set) > 0 {
		if cached, ok := o.cache[&set[0]]; ok {
			return cached
		}
	}
	fm := &fieldsAndFragments{fields: map[string][]fieldEntry{}}
	seenFragments := map[string]bool{}

	var collect func(parent *ast.Definition, set ast.SelectionSet)
	collect = func(parent *ast.Definition, set ast.SelectionSet) {
		for _, sel := range set {
			switch sel := sel.(type) {
			case *ast.Field:
				var def *ast.FieldDefinition
				if parent != nil && (parent.Kind == ast.Object || parent.Kind == ast.Interface) {
					def = parent.Fields.ForName(sel.Name)
				}
				key := sel.Alias
				if key == "" {
					key = sel.Name
				}
				if _, ok := fm.fields[key]; !ok {
					fm.keys = append(fm.keys, key)
				}
				fm.fields[key] = append(fm.fields[key], fieldEntry{parent: parent, node: sel, def: def})
			case *ast.FragmentSpread:
				if !seenFragments[sel.Name] {
					seenFragments[sel.Name] = true
					fm.fragments = append(fm.fragments, sel.Name)
				}
			case *ast.InlineFragment:
				fragParent := parent
				if sel.TypeCondition != "" {
					fragParent = o.schema.Types[sel.TypeCondition]
				}
				collect(fragParent, sel.SelectionSet)
			}
		}
	}
	collect(parent, set)

	if len(set) > 0 {
		o.cache[&set[0]] = fm
	}
	return fm
}
