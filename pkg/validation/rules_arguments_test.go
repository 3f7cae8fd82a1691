package validation

import "testing"

func TestKnownArgumentNames_Known(t *testing.T) {
	expectQuery(t, KnownArgumentNamesRule,
		`{ dog { doesKnowCommand(dogCommand: SIT) isAtLocation(y: 1, x: 2) } human(id: 1) { name } }`)
}

func TestKnownArgumentNames_SuggestsFieldArgument(t *testing.T) {
	expectQuery(t, KnownArgumentNamesRule,
		`{ dog { doesKnowCommand(command: SIT) } }`,
		e("Unknown argument < command > on field < Dog.doesKnowCommand >. Did you mean dogCommand?", at(1, 25)),
	)
}

func TestKnownArgumentNames_Directive(t *testing.T) {
	expectQuery(t, KnownArgumentNamesRule,
		`{ dog @skip(iff: true) { name } }`,
		e("Unknown argument < iff > on directive < @skip >. Did you mean if?", at(1, 13)),
	)
}

func TestKnownArgumentNamesOnDirectives(t *testing.T) {
	expectSDL(t, KnownArgumentNamesOnDirectivesRule,
		`directive @test(arg: String) on FIELD_DEFINITION type Query { foo: String @test(arg: "") }`)
	expectSDL(t, KnownArgumentNamesOnDirectivesRule,
		`directive @test(arg: String) on FIELD_DEFINITION type Query { foo: String @test(unknown: "") }`,
		e("Unknown argument < unknown > on directive < @test >.", at(1, 81)),
	)
}

func TestUniqueArgumentNames(t *testing.T) {
	expectQuery(t, UniqueArgumentNamesRule, `{ field(a: "x", b: "y") { a } }`)
	expectQuery(t, UniqueArgumentNamesRule,
		`{ field(arg1: "value", arg1: "value", arg1: "value") }`,
		e("There can be only one argument named < arg1 >.", at(1, 9), at(1, 24)),
		e("There can be only one argument named < arg1 >.", at(1, 9), at(1, 39)),
	)
}

func TestSDLUniqueArgumentNames(t *testing.T) {
	expectSDL(t, SDLUniqueArgumentNamesRule,
		`directive @test(arg: String) on FIELD_DEFINITION type Query { foo: String @test(arg: "a", arg: "b") }`,
		e("There can be only one argument named < arg >.", at(1, 81), at(1, 91)),
	)
}

func TestProvidedRequiredArguments_Provided(t *testing.T) {
	expectQuery(t, ProvidedRequiredArgumentsRule,
		`{ complicatedArgs { multipleReqs(req1: 1, req2: 2) nonNullFieldWithDefault multipleOpts } dog @include(if: true) { name } }`)
}

func TestProvidedRequiredArguments_MissingOnField(t *testing.T) {
	expectQuery(t, ProvidedRequiredArgumentsRule,
		`{ complicatedArgs { multipleReqs(req2: 2) } }`,
		e("Argument < ComplicatedArgs.multipleReqs(req1:) > of type < Int! > is required, but it was not provided.", at(1, 21)),
	)
}

func TestProvidedRequiredArguments_MissingOnDirective(t *testing.T) {
	expectQuery(t, ProvidedRequiredArgumentsRule,
		`{ dog @include { name } }`,
		e("Argument < @include(if:) > of type < Boolean! > is required, but it was not provided.", at(1, 8)),
	)
}

func TestProvidedRequiredArgumentsOnDirectives(t *testing.T) {
	expectSDL(t, ProvidedRequiredArgumentsOnDirectivesRule,
		`directive @test(arg: String!) on FIELD_DEFINITION type Query { foo: String @test }`,
		e("Argument < @test(arg:) > of type < String! > is required, but it was not provided.", at(1, 77)),
	)
}
