package validation

import "testing"

func TestUniqueFragmentNames(t *testing.T) {
	expectQuery(t, UniqueFragmentNamesRule,
		`{ dog { ...fragA ...fragB } } fragment fragA on Dog { name } fragment fragB on Dog { barks }`)
	expectQuery(t, UniqueFragmentNamesRule,
		`{ dog { ...fragA } } fragment fragA on Dog { name } fragment fragA on Dog { barks }`,
		e("There can be only one fragment named < fragA >.", at(1, 22), at(1, 53)),
	)
}

func TestKnownFragmentNames(t *testing.T) {
	expectQuery(t, KnownFragmentNamesRule, `{ dog { ...F } } fragment F on Dog { name }`)
	expectQuery(t, KnownFragmentNamesRule,
		`{ dog { ...unknownFragment } }`,
		e("Unknown fragment < unknownFragment >.", at(1, 12)),
	)
}

func TestNoUnusedFragments(t *testing.T) {
	expectQuery(t, NoUnusedFragmentsRule,
		`{ dog { ...used } } fragment used on Dog { ...nested } fragment nested on Dog { name }`)
	expectQuery(t, NoUnusedFragmentsRule,
		`{ dog { ...used } } fragment used on Dog { name } fragment unused on Dog { name }`,
		e("Fragment < unused > is never used.", at(1, 51)),
	)
}

func TestPossibleFragmentSpreads_Overlapping(t *testing.T) {
	expectQuery(t, PossibleFragmentSpreadsRule,
		`fragment f on Pet { ... on Dog { barks } ...catOrDog } fragment catOrDog on CatOrDog { __typename } fragment g on CatOrDog { ... on Pet { name } }`)
}

func TestPossibleFragmentSpreads_Disjoint(t *testing.T) {
	expectQuery(t, PossibleFragmentSpreadsRule,
		`fragment invalid on Dog { ...catFrag } fragment catFrag on Cat { meows }`,
		e("Fragment < catFrag > cannot be spread here as objects of type < Dog > can never be of type < Cat >.", at(1, 30)),
	)
	expectQuery(t, PossibleFragmentSpreadsRule,
		`fragment f on Dog { ... on Cat { meows } }`,
		e("Fragment cannot be spread here as objects of type < Dog > can never be of type < Cat >.", at(1, 25)),
	)
}

func TestNoFragmentCycles_NoCycle(t *testing.T) {
	expectQuery(t, NoFragmentCyclesRule,
		`fragment fragA on Dog { ...fragB ...fragB } fragment fragB on Dog { name }`)
}

func TestNoFragmentCycles_TwoFragments(t *testing.T) {
	expectQuery(t, NoFragmentCyclesRule,
		`fragment fragA on Dog { ...fragB } fragment fragB on Dog { ...fragA }`,
		e("Cannot spread fragment < fragA > within itself via < fragB >.", at(1, 28), at(1, 63)),
	)
}

func TestNoFragmentCycles_Self(t *testing.T) {
	expectQuery(t, NoFragmentCyclesRule,
		`fragment fragA on Dog { ...fragA }`,
		e("Cannot spread fragment < fragA > within itself.", at(1, 28)),
	)
}

func TestNoFragmentCycles_SharedNodeReportsEachCycleOnce(t *testing.T) {
	expectQuery(t, NoFragmentCyclesRule,
		`fragment fragA on Dog { ...fragB, ...fragC } fragment fragB on Dog { ...fragA } fragment fragC on Dog { ...fragA }`,
		e("Cannot spread fragment < fragA > within itself via < fragB >.", at(1, 28), at(1, 73)),
		e("Cannot spread fragment < fragA > within itself via < fragC >.", at(1, 38), at(1, 108)),
	)
}
