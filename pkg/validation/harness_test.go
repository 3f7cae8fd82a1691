package validation

import (
	"sync"
	"testing"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

const testSchemaSDL = `
schema {
  query: QueryRoot
  subscription: SubscriptionRoot
}

directive @onQuery on QUERY
directive @onField on FIELD
directive @repeatable repeatable on FIELD | QUERY

interface Pet {
  name(surname: Boolean): String
}

enum DogCommand {
  SIT
  HEEL
  DOWN
}

type Dog implements Pet {
  name(surname: Boolean): String
  nickname: String
  barkVolume: Int
  barks: Boolean
  doesKnowCommand(dogCommand: DogCommand): Boolean
  isHouseTrained(atOtherHomes: Boolean = true): Boolean
  isAtLocation(x: Int, y: Int): Boolean
}

enum FurColor {
  BROWN
  BLACK
  TAN
  SPOTTED
  NO_FUR
  UNKNOWN
}

type Cat implements Pet {
  name(surname: Boolean): String
  nickname: String
  meows: Boolean
  meowsVolume: Int
  furColor: FurColor
}

union CatOrDog = Cat | Dog

type Human {
  name(surname: Boolean): String
  pets: [Pet]
  relatives: [Human]
  iq: Int
}

input ComplexInput {
  requiredField: Boolean!
  nonNullField: Boolean! = false
  intField: Int
  stringField: String
  booleanField: Boolean
  stringListField: [String]
}

input OneOfInput @oneOf {
  stringField: String
  intField: Int
}

type ComplicatedArgs {
  intArgField(intArg: Int): String
  nonNullIntArgField(nonNullIntArg: Int!): String
  stringArgField(stringArg: String): String
  booleanArgField(booleanArg: Boolean): String
  enumArgField(enumArg: FurColor): String
  floatArgField(floatArg: Float): String
  idArgField(idArg: ID): String
  stringListArgField(stringListArg: [String]): String
  stringListNonNullArgField(stringListNonNullArg: [String!]): String
  complexArgField(complexArg: ComplexInput): String
  oneOfArgField(oneOfArg: OneOfInput): String
  multipleReqs(req1: Int!, req2: Int!): String
  nonNullFieldWithDefault(arg: Int! = 0): String
  multipleOpts(opt1: Int = 0, opt2: Int = 0): String
}

type T {
  a: String
  b: String
  c: String
  deepField: T
}

type QueryRoot {
  human(id: ID): Human
  dog: Dog
  cat: Cat
  pet: Pet
  catOrDog: CatOrDog
  complicatedArgs: ComplicatedArgs
  field(a: String, b: String, c: String): T
}

type SubscriptionRoot {
  importantEmails: [String]
  notImportantEmails: [String]
}
`

var loadTestSchema = sync.OnceValues(func() (*ast.Schema, error) {
	return gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: testSchemaSDL})
})

func testSchema(t *testing.T) *ast.Schema {
	t.Helper()
	schema, err := loadTestSchema()
	require.NoError(t, err)
	return schema
}

type loc struct {
	Line   int
	Column int
}

type finding struct {
	Message   string
	Locations []loc
}

func at(line, column int) loc {
	return loc{Line: line, Column: column}
}

func e(message string, locations ...loc) finding {
	return finding{Message: message, Locations: locations}
}

func findings(errs List) []finding {
	out := make([]finding, len(errs))
	for i, err := range errs {
		out[i] = finding{Message: err.Message}
		for _, l := range err.Locations {
			out[i].Locations = append(out[i].Locations, loc{Line: l.Line, Column: l.Column})
		}
	}
	return out
}

func runQuery(t *testing.T, query string, rules ...QueryRule) List {
	t.Helper()
	return ValidateQuery(testSchema(t), language.MustParse(query), WithRules(rules...))
}

func expectQuery(t *testing.T, rule QueryRule, query string, want ...finding) {
	t.Helper()
	got := findings(runQuery(t, query, rule))
	if len(want) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.ElementsMatch(t, want, got)
}

func expectSDL(t *testing.T, rule SDLRule, sdl string, want ...finding) {
	t.Helper()
	got := findings(ValidateSDL(language.MustParse(sdl), rule))
	if len(want) == 0 {
		assert.Empty(t, got)
		return
	}
	assert.ElementsMatch(t, want, got)
}
