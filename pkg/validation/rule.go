package validation

import (
	"github.com/samwightt/gqlvet/pkg/visitor"
)

// Rule is a named validation rule. Create is called once per validation run and
// returns the visitor that inspects the document and reports through the context.
type Rule[C any] struct {
	Name   string
	Create func(ctx C) visitor.Visitor
}

// SDLRule validates a type-system document on its own.
type SDLRule = Rule[*ASTContext]

// QueryRule validates an executable document against a schema.
type QueryRule = Rule[*QueryContext]

// DefaultQueryRules returns the rules run on executable documents, in order.
func DefaultQueryRules() []QueryRule {
	return []QueryRule{
		ExecutableDefinitionsRule,
		UniqueOperationNamesRule,
		LoneAnonymousOperationRule,
		SingleFieldSubscriptionsRule,
		KnownTypeNamesRule,
		FragmentsOnCompositeTypesRule,
		VariablesAreInputTypesRule,
		ScalarLeafsRule,
		FieldsOnCorrectTypeRule,
		UniqueFragmentNamesRule,
		KnownFragmentNamesRule,
		NoUnusedFragmentsRule,
		PossibleFragmentSpreadsRule,
		NoFragmentCyclesRule,
		UniqueVariableNamesRule,
		NoUndefinedVariablesRule,
		NoUnusedVariablesRule,
		KnownDirectivesRule,
		UniqueDirectivesPerLocationRule,
		KnownArgumentNamesRule,
		UniqueArgumentNamesRule,
		ValuesOfCorrectTypeRule,
		ProvidedRequiredArgumentsRule,
		VariablesInAllowedPositionRule,
		OverlappingFieldsCanBeMergedRule,
		UniqueInputFieldNamesRule,
	}
}

// DefaultSDLRules returns the rules run on type-system documents, in order.
func DefaultSDLRules() []SDLRule {
	return []SDLRule{
		LoneSchemaDefinitionRule,
		UniqueOperationTypesRule,
		UniqueTypeNamesRule,
		UniqueEnumValueNamesRule,
		UniqueFieldDefinitionNamesRule,
		UniqueArgumentDefinitionNamesRule,
		UniqueDirectiveNamesRule,
		SDLKnownTypeNamesRule,
		SDLKnownDirectivesRule,
		SDLUniqueDirectivesPerLocationRule,
		PossibleTypeExtensionsRule,
		KnownArgumentNamesOnDirectivesRule,
		SDLUniqueArgumentNamesRule,
		SDLUniqueInputFieldNamesRule,
		ProvidedRequiredArgumentsOnDirectivesRule,
		HasEnumValueDefinedRule,
		HasFieldDefinedRule,
		HasMemberDefinedRule,
		UniqueInterfaceImplementationsRule,
		UniqueUnionMembersRule,
		ValidObjectImplementsRule,
		InputObjectNoCircularReferenceRule,
		ReservedNamesRule,
	}
}

// Kind tells which entry point a rule belongs to.
type Kind string

const (
	KindQuery Kind = "query"
	KindSDL   Kind = "sdl"
)

// Info describes a rule for listings.
type Info struct {
	Name    string
	Kind    Kind
	Section string
	URL     string
}

// Catalog lists every default rule, query rules first.
func Catalog() []Info {
	var infos []Info
	for _, r := range DefaultQueryRules() {
		infos = append(infos, describe(r.Name, KindQuery))
	}
	for _, r := range DefaultSDLRules() {
		infos = append(infos, describe(r.Name, KindSDL))
	}
	return infos
}

func describe(name string, kind Kind) Info {
	info := Info{Name: name, Kind: kind}
	if kind == KindQuery {
		if cl, ok := clauses[name]; ok {
			info.Section = cl.section
			info.URL = specURL + cl.anchor
		}
	}
	return info
}

// QueryRuleNamed returns the default query rule called name.
func QueryRuleNamed(name string) (QueryRule, bool) {
	for _, r := range DefaultQueryRules() {
		if r.Name == name {
			return r, true
		}
	}
	return QueryRule{}, false
}

// SDLRuleNamed returns the default SDL rule called name.
func SDLRuleNamed(name string) (SDLRule, bool) {
	for _, r := range DefaultSDLRules() {
		if r.Name == name {
			return r, true
		}
	}
	return SDLRule{}, false
}

// RuleNames returns the names of every default rule, without duplicates.
func RuleNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, info := range Catalog() {
		if !seen[info.Name] {
			seen[info.Name] = true
			names = append(names, info.Name)
		}
	}
	return names
}

// clauses maps query rules to the section of the specification they enforce.
var clauses = map[string]clause{}

func specClause(rule, section, anchor string) clause {
	cl := clause{rule: rule, section: section, anchor: anchor}
	if _, ok := clauses[rule]; !ok {
		clauses[rule] = cl
	}
	return cl
}

// sdlClause is used by type-system rules, which report without extensions.
func sdlClause(rule string) clause {
	return clause{rule: rule}
}
