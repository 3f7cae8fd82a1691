// Package scalars coerces GraphQL literals into scalar values.
//
// Coercion never panics: a literal that does not fit the scalar yields an error that
// validation turns into a message.
package scalars

import (
	"fmt"
	"math"
	"strconv"

	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/vektah/gqlparser/v2/ast"
)

// ParseLiteral coerces a non-null, non-variable literal.
type ParseLiteral func(v *ast.Value) (any, error)

// Registry maps scalar names to their literal coercion.
type Registry struct {
	parsers map[string]ParseLiteral
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{parsers: map[string]ParseLiteral{}}
}

// Default returns a registry holding the built-in scalars.
func Default() *Registry {
	r := New()
	r.Register("Int", parseInt)
	r.Register("Float", parseFloat)
	r.Register("String", parseString)
	r.Register("Boolean", parseBoolean)
	r.Register("ID", parseID)
	return r
}

// Register sets the coercion for name, replacing any previous one.
func (r *Registry) Register(name string, parse ParseLiteral) {
	r.parsers[name] = parse
}

// RegisterString makes name coerce like String.
func (r *Registry) RegisterString(name string) {
	r.Register(name, parseString)
}

// Has reports whether name has a registered coercion.
func (r *Registry) Has(name string) bool {
	_, ok := r.parsers[name]
	return ok
}

// Len returns the number of registered scalars.
func (r *Registry) Len() int {
	return len(r.parsers)
}

// Parse coerces v as the scalar name. Scalars without a registered coercion accept any
// literal.
func (r *Registry) Parse(name string, v *ast.Value) (any, error) {
	if r != nil {
		if parse, ok := r.parsers[name]; ok {
			return parse(v)
		}
	}
	return v.Raw, nil
}

func parseInt(v *ast.Value) (any, error) {
	if v.Kind != ast.IntValue {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %s", language.PrintValue(v))
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %s", v.Raw)
	}
	return int32(n), nil
}

func parseFloat(v *ast.Value) (any, error) {
	if v.Kind != ast.IntValue && v.Kind != ast.FloatValue {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", language.PrintValue(v))
	}
	f, err := strconv.ParseFloat(v.Raw, 64)
	if err != nil {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", v.Raw)
	}
	return f, nil
}

func parseString(v *ast.Value) (any, error) {
	if v.Kind != ast.StringValue && v.Kind != ast.BlockValue {
		return nil, fmt.Errorf("String cannot represent a non string value: %s", language.PrintValue(v))
	}
	return v.Raw, nil
}

func parseBoolean(v *ast.Value) (any, error) {
	if v.Kind != ast.BooleanValue {
		return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", language.PrintValue(v))
	}
	return v.Raw == "true", nil
}

func parseID(v *ast.Value) (any, error) {
	switch v.Kind {
	case ast.StringValue, ast.BlockValue, ast.IntValue:
		return v.Raw, nil
	}
	return nil, fmt.Errorf("ID cannot represent a non-string and non-integer value: %s", language.PrintValue(v))
}
