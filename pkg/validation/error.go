package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const (
	specEdition = "October 2021"
	specURL     = "https://spec.graphql.org/October2021/#sec-"
)

// Location is a span in the source. The end is the end of the node's first token.
type Location struct {
	Line      int `json:"line"`
	Column    int `json:"column"`
	LineEnd   int `json:"lineEnd"`
	ColumnEnd int `json:"columnEnd"`
}

// Error is a single validation finding.
type Error struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
	// Rule names the rule that reported the error.
	Rule string `json:"-"`
}

func (e *Error) Error() string {
	if len(e.Locations) == 0 {
		return e.Message
	}
	var b strings.Builder
	b.WriteString(e.Message)
	b.WriteString(" (")
	for i, loc := range e.Locations {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(loc.Line))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(loc.Column))
	}
	b.WriteByte(')')
	return b.String()
}

// GQLError converts the error for consumers of gqlparser's error type.
func (e *Error) GQLError() *gqlerror.Error {
	gqlErr := &gqlerror.Error{
		Message:    e.Message,
		Extensions: e.Extensions,
		Rule:       e.Rule,
	}
	for _, loc := range e.Locations {
		gqlErr.Locations = append(gqlErr.Locations, gqlerror.Location{Line: loc.Line, Column: loc.Column})
	}
	return gqlErr
}

// List is the result of a validation run.
type List []*Error

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns the list as an error, or nil when it is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// GQLErrors converts every error in the list.
func (l List) GQLErrors() gqlerror.List {
	out := make(gqlerror.List, len(l))
	for i, err := range l {
		out[i] = err.GQLError()
	}
	return out
}

// clause ties a rule's errors to the section of the GraphQL specification they enforce.
// Rules without a section number report no extensions.
type clause struct {
	rule    string
	section string
	anchor  string
}

func (c clause) extensions() map[string]any {
	if c.section == "" {
		return nil
	}
	return map[string]any{
		"spec":    specEdition,
		"rule":    c.section,
		"tag":     strings.ToLower(c.anchor),
		"details": specURL + c.anchor,
	}
}

// Locate returns the location of a node, if gqlparser recorded one.
func Locate(node any) (Location, bool) {
	pos := position(node)
	if pos == nil {
		return Location{}, false
	}
	width := pos.End - pos.Start
	if width < 1 {
		width = 1
	}
	return Location{
		Line:      pos.Line,
		Column:    pos.Column,
		LineEnd:   pos.Line,
		ColumnEnd: pos.Column + width,
	}, true
}

func locations(nodes []any) []Location {
	var locs []Location
	for _, n := range nodes {
		if loc, ok := Locate(n); ok {
			locs = append(locs, loc)
		}
	}
	return locs
}

func position(node any) *ast.Position {
	if v := reflect.ValueOf(node); !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil
	}
	switch n := node.(type) {
	case *ast.Position:
		return n
	case *ast.OperationDefinition:
		return n.Position
	case *ast.VariableDefinition:
		return n.Position
	case *ast.Field:
		return n.Position
	case *ast.Argument:
		return n.Position
	case *ast.FragmentSpread:
		return n.Position
	case *ast.InlineFragment:
		return n.Position
	case *ast.FragmentDefinition:
		return n.Position
	case *ast.Directive:
		return n.Position
	case *ast.Value:
		return n.Position
	case *ast.ChildValue:
		return n.Position
	case *ast.Type:
		return n.Position
	case *ast.SchemaDefinition:
		return n.Position
	case *ast.OperationTypeDefinition:
		return n.Position
	case *ast.Definition:
		return n.Position
	case *ast.FieldDefinition:
		return n.Position
	case *ast.ArgumentDefinition:
		return n.Position
	case *ast.EnumValueDefinition:
		return n.Position
	case *ast.DirectiveDefinition:
		return n.Position
	}
	return nil
}
