package cmd_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/samwightt/gqlvet/cmd"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func isValidationError(err error) bool {
	return err != nil && errors.Is(err, cmd.ErrValidationFailed)
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

const validateTestSchema = `
type User {
  id: ID!
  name: String!
  email: String!
  posts: [Post!]!
}

type Post {
  id: ID!
  title: String!
  author: User!
}

type Query {
  user(id: ID!): User
  users(limit: Int, offset: Int): [User!]!
  post(id: ID!): Post
}

type Mutation {
  createUser(name: String!, email: String!): User!
  updateUser(id: ID!, name: String, email: String): User
  deleteUser(id: ID!): Boolean!
}
`

func setupValidateTestSchema(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.graphql")
	err := os.WriteFile(schemaPath, []byte(validateTestSchema), 0644)
	require.NoError(t, err)
	return schemaPath
}

func writeValidateQuery(t *testing.T, dir string, query string) string {
	t.Helper()
	return writeFile(t, dir, "query.graphql", query)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestValidate_ValidSimpleQuery(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				id
				name
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ "+queryPath+" is valid")
}

func TestValidate_ValidQueryWithVariables(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query GetUser($userId: ID!) {
			user(id: $userId) {
				id
				name
				email
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidate_ValidMutation(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		mutation CreateNewUser($name: String!, $email: String!) {
			createUser(name: $name, email: $email) {
				id
				name
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidate_ValidNestedQuery(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				id
				name
				posts {
					id
					title
					author {
						id
						name
					}
				}
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidate_InvalidFieldSelection(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				id
				nonexistent
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "✗ "+queryPath+" has 1 error:")
	assert.Contains(t, stdout, "Cannot query field < nonexistent > on type < User >.")
	assert.Contains(t, stdout, "[FieldsOnCorrectType]")
}

func TestValidate_InvalidArgument(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123", unknownArg: "test") {
				id
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "[KnownArgumentNames]")
}

func TestValidate_MissingRequiredArgument(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user {
				id
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "Argument < Query.user(id:) > of type < ID! > is required, but it was not provided.")
	assert.Contains(t, stdout, "[ProvidedRequiredArguments]")
}

func TestValidate_UnknownField(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			nonexistentField {
				id
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "Cannot query field < nonexistentField > on type < Query >.")
}

func TestValidate_JSONFormat_Valid(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				id
				name
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json"})
	require.NoError(t, err)

	require.True(t, gjson.Valid(stdout), "output should be JSON: %s", stdout)
	assert.Equal(t, int64(1), gjson.Get(stdout, "#").Int())
	assert.Equal(t, queryPath, gjson.Get(stdout, "0.file").String())
	assert.True(t, gjson.Get(stdout, "0.valid").Bool())
	assert.True(t, gjson.Get(stdout, "0.errors").IsArray())
	assert.Empty(t, gjson.Get(stdout, "0.errors").Array())
}

func TestValidate_JSONFormat_Invalid(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, "query {\n  user(id: \"123\") {\n    id\n    nonexistent\n  }\n}\n")

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json"})
	assert.True(t, isValidationError(err), "expected validation error")

	require.True(t, gjson.Valid(stdout), "output should be JSON: %s", stdout)
	assert.False(t, gjson.Get(stdout, "0.valid").Bool())
	assert.Equal(t, "Cannot query field < nonexistent > on type < User >.", gjson.Get(stdout, "0.errors.0.message").String())
	assert.Equal(t, "FieldsOnCorrectType", gjson.Get(stdout, "0.errors.0.rule").String())
	assert.Equal(t, "5.3.1", gjson.Get(stdout, "0.errors.0.section").String())
	assert.Equal(t, "https://spec.graphql.org/October2021/#sec-Field-Selections", gjson.Get(stdout, "0.errors.0.details").String())
	assert.Equal(t, int64(4), gjson.Get(stdout, "0.errors.0.locations.0.line").Int())
	assert.Equal(t, int64(5), gjson.Get(stdout, "0.errors.0.locations.0.column").Int())
	assert.Equal(t, int64(16), gjson.Get(stdout, "0.errors.0.locations.0.columnEnd").Int())
}

func TestValidate_YAMLFormat(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `query { user(id: "1") { id } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "yaml"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "- file: "+queryPath)
	assert.Contains(t, stdout, "valid: true")
	assert.Contains(t, stdout, "errors: []")
}

func TestValidate_MultipleErrors(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				id
				field1
				field2
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "✗ "+queryPath+" has 2 errors:")
}

func TestValidate_SyntaxError(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				id
				name

	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.False(t, gjson.Get(stdout, "0.valid").Bool())
	assert.Equal(t, "Syntax", gjson.Get(stdout, "0.errors.0.rule").String())
	assert.NotEmpty(t, gjson.Get(stdout, "0.errors.0.message").String())
}

func TestValidate_EmptyDocument(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"validate", "-s", schemaPath, "-f", "text"}, bytes.NewBufferString("  # nothing here\n"))
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "✗ stdin has 1 error:")
	assert.Contains(t, stdout, "document contains no definitions [Syntax]")
}

func TestValidate_Stdin_Valid(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	query := `query { user(id: "123") { id name } }`
	stdin := bytes.NewBufferString(query)

	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"validate", "-s", schemaPath, "-f", "text"}, stdin)
	require.NoError(t, err)
	assert.Equal(t, "✓ stdin is valid\n", stdout)
}

func TestValidate_Stdin_InvalidGolden(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	stdin := bytes.NewBufferString("query {\n  user(id: \"123\") {\n    nam\n  }\n}\n")

	stdout, _, err := cmd.ExecuteWithArgsAndStdin([]string{"validate", "-s", schemaPath, "-f", "text"}, stdin)
	assert.True(t, isValidationError(err), "expected validation error")

	g := goldie.New(t)
	g.Assert(t, "validate_text", []byte(stripANSI(stdout)))
}

func TestValidate_NonExistentFile(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", "/nonexistent/query.graphql", "-s", schemaPath})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestValidate_NonExistentSchema(t *testing.T) {
	dir := t.TempDir()
	queryPath := writeValidateQuery(t, dir, `query { user { id } }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", "/nonexistent/schema.graphql"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist: /nonexistent/schema.graphql")
}

func TestValidate_InvalidSchema(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.graphql", `type Query { user: Missing }`)
	queryPath := writeValidateQuery(t, dir, `query { user }`)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath})
	assert.Error(t, err)
	assert.False(t, isValidationError(err))
	assert.Contains(t, err.Error(), "GraphQL schema parsing error")
}

func TestValidate_SplitSchemaGlob(t *testing.T) {
	dir := t.TempDir()
	schemaDir := filepath.Join(dir, "schema")
	require.NoError(t, os.Mkdir(schemaDir, 0755))
	writeFile(t, schemaDir, "query.graphql", `type Query { user: User }`)
	writeFile(t, schemaDir, "user.graphql", `type User { id: ID! }`)
	queryPath := writeValidateQuery(t, dir, `{ user { id } }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", filepath.Join(schemaDir, "*.graphql"), "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidate_WrongArgumentType(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			users(limit: "not_an_int") {
				id
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "[ValuesOfCorrectType]")
}

func TestValidate_FragmentSpread(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		fragment UserFields on User {
			id
			name
			email
		}

		query {
			user(id: "123") {
				...UserFields
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidate_InvalidFragmentSpread(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		fragment PostFields on Post {
			id
			title
		}

		query {
			user(id: "123") {
				...PostFields
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "[PossibleFragmentSpreads]")
}

func TestValidate_InlineFragment(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)

	queryPath := writeValidateQuery(t, dir, `
		query {
			user(id: "123") {
				... on User {
					id
					name
				}
			}
		}
	`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func setupMultipleQueries(t *testing.T) (schemaPath, validPath, invalidPath string) {
	t.Helper()
	schemaPath = setupValidateTestSchema(t)
	opsDir := filepath.Join(filepath.Dir(schemaPath), "ops")
	require.NoError(t, os.Mkdir(opsDir, 0755))
	validPath = writeFile(t, opsDir, "a.graphql", `query A { user(id: "1") { id } }`)
	invalidPath = writeFile(t, opsDir, "b.graphql", `query B { user(id: "1") { nope } }`)
	return schemaPath, validPath, invalidPath
}

func TestValidate_MultipleFiles(t *testing.T) {
	schemaPath, validPath, invalidPath := setupMultipleQueries(t)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", validPath, invalidPath, "-s", schemaPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "✓ "+validPath+" is valid\n\n✗ "+invalidPath+" has 1 error:")
}

func TestValidate_GlobKeepsOrder(t *testing.T) {
	schemaPath, validPath, invalidPath := setupMultipleQueries(t)
	pattern := filepath.Join(filepath.Dir(validPath), "*.graphql")

	for _, concurrency := range []string{"1", "4"} {
		t.Run("j"+concurrency, func(t *testing.T) {
			stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", pattern, "-s", schemaPath, "-f", "json", "-j", concurrency})
			assert.True(t, isValidationError(err), "expected validation error")

			assert.Equal(t, int64(2), gjson.Get(stdout, "#").Int())
			assert.Equal(t, validPath, gjson.Get(stdout, "0.file").String())
			assert.True(t, gjson.Get(stdout, "0.valid").Bool())
			assert.Equal(t, invalidPath, gjson.Get(stdout, "1.file").String())
			assert.False(t, gjson.Get(stdout, "1.valid").Bool())
			assert.Equal(t, "FieldsOnCorrectType", gjson.Get(stdout, "1.errors.0.rule").String())
		})
	}
}

func TestValidate_GlobWithoutMatches(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	pattern := filepath.Join(t.TempDir(), "*.graphql")

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", pattern, "-s", schemaPath})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

const unusedVariableQuery = `query Q($a: Int) { user(id: "1") { nope } }`

func TestValidate_OnlyRule(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), unusedVariableQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json", "--rule", "NoUnusedVariables"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Equal(t, int64(1), gjson.Get(stdout, "0.errors.#").Int())
	assert.Equal(t, "NoUnusedVariables", gjson.Get(stdout, "0.errors.0.rule").String())
}

func TestValidate_SkipRule(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), unusedVariableQuery)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "json",
		"--skip-rule", "NoUnusedVariables", "--skip-rule", "FieldsOnCorrectType"})
	require.NoError(t, err)
	assert.True(t, gjson.Get(stdout, "0.valid").Bool())
}

func TestValidate_UnknownRule(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	_, _, err := cmd.ExecuteWithArgs([]string{"validate", "-s", schemaPath, "--skip-rule", "FieldsOnCorectType"})
	require.Error(t, err)
	assert.Equal(t, "unknown rule 'FieldsOnCorectType', did you mean 'FieldsOnCorrectType'?", err.Error())
}

func TestValidate_NoRulesLeft(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)

	_, _, err := cmd.ExecuteWithArgsAndStdin([]string{"validate", "-s", schemaPath, "--rule", "UniqueTypeNames"}, bytes.NewBufferString("{ user }"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no query rules left to run")
}

func TestValidate_ConfigFile(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	dir := filepath.Dir(schemaPath)
	queryPath := writeValidateQuery(t, dir, unusedVariableQuery)
	configPath := writeFile(t, dir, "gqlvet.yaml", `
schema:
  - `+schemaPath+`
format: json
skip-rules:
  - NoUnusedVariables
`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "--config", configPath})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Equal(t, int64(1), gjson.Get(stdout, "0.errors.#").Int())
	assert.Equal(t, "FieldsOnCorrectType", gjson.Get(stdout, "0.errors.0.rule").String())

	// Flags win over the file.
	stdout, _, err = cmd.ExecuteWithArgs([]string{"validate", queryPath, "--config", configPath, "-f", "text"})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Contains(t, stdout, "has 1 error:")
}

func TestValidate_MissingConfigFile(t *testing.T) {
	_, _, err := cmd.ExecuteWithArgs([]string{"validate", "--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate_Environment(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), unusedVariableQuery)

	t.Setenv("GQLVET_SCHEMA", schemaPath)
	t.Setenv("GQLVET_FORMAT", "json")
	t.Setenv("GQLVET_SKIP_RULES", "FieldsOnCorrectType")

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath})
	assert.True(t, isValidationError(err), "expected validation error")
	assert.Equal(t, int64(1), gjson.Get(stdout, "0.errors.#").Int())
	assert.Equal(t, "NoUnusedVariables", gjson.Get(stdout, "0.errors.0.rule").String())
}

func TestValidate_CustomScalar(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.graphql", `
scalar DateTime
type Query { events(after: DateTime): [String] }
`)
	queryPath := writeValidateQuery(t, dir, `{ events(after: "2026-01-01T00:00:00Z") }`)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "-f", "text", "--scalar", "DateTime"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "is valid")
}

func TestValidate_DebugLogging(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `query { user(id: "1") { id } }`)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath, "--log-level", "debug"})
	require.NoError(t, err)
	assert.Contains(t, stderr, "cache miss")
	assert.Contains(t, stderr, "validated")
	assert.Contains(t, stderr, "validation finished")
}

func TestValidate_LoggingOffByDefault(t *testing.T) {
	schemaPath := setupValidateTestSchema(t)
	queryPath := writeValidateQuery(t, filepath.Dir(schemaPath), `query { user(id: "1") { id } }`)

	_, stderr, err := cmd.ExecuteWithArgs([]string{"validate", queryPath, "-s", schemaPath})
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	_, _, err := cmd.ExecuteWithArgs([]string{"validate", "--log-level", "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestValidate_InvalidFormat(t *testing.T) {
	_, _, err := cmd.ExecuteWithArgs([]string{"validate", "-f", "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: json, yaml, text, pretty")
}
