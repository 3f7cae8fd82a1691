// Package validator is a long-lived front end to pkg/validation.
//
// A Validator owns one schema and one rule set. It parses sources, validates them and
// caches the results by a hash of the source, so repeated documents (persisted queries,
// the same file linted twice) are only validated once.
package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/scalars"
	"github.com/samwightt/gqlvet/pkg/validation"
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const tracerName = "github.com/samwightt/gqlvet/pkg/validator"

// DefaultCacheSize is the number of results kept when WithCacheSize is not given.
const DefaultCacheSize = 512

// ErrNoSchema is reported by Validate when the Validator was built without a schema.
var ErrNoSchema = errors.New("validator: no schema loaded")

// Result is the outcome of validating one source.
type Result struct {
	Name   string
	Errors validation.List
	// Err is set when the source could not be validated at all: it failed to parse,
	// the context was done or no schema was loaded.
	Err error
	// Cached reports whether the result came from the cache.
	Cached bool
}

// Valid reports whether the source parsed and produced no findings.
func (r Result) Valid() bool {
	return r.Err == nil && len(r.Errors) == 0
}

// Stats are the counters of a Validator since it was created.
type Stats struct {
	Hits        int64
	Misses      int64
	Validations int64
}

// Validator validates documents against a fixed schema and rule set.
// It is safe for concurrent use.
type Validator struct {
	schema   *ast.Schema
	rules    []validation.QueryRule
	sdlRules []validation.SDLRule
	scalars  *scalars.Registry
	logger   *zap.Logger
	tracer   trace.Tracer
	cache    *lru.Cache[uint64, Result]

	hits        *atomic.Int64
	misses      *atomic.Int64
	validations *atomic.Int64
}

type options struct {
	cacheSize      int
	logger         *zap.Logger
	tracerProvider trace.TracerProvider
	rules          []validation.QueryRule
	sdlRules       []validation.SDLRule
	scalars        *scalars.Registry
}

// Option configures a Validator.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithCacheSize sets how many results are cached. Zero disables the cache.
func WithCacheSize(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

// WithTracerProvider sets where spans go. The default is the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tracerProvider = tp }
}

// WithRules restricts the rules used for executable documents.
func WithRules(rules ...validation.QueryRule) Option {
	return func(o *options) { o.rules = rules }
}

// WithSDLRules restricts the rules used for type-system documents.
func WithSDLRules(rules ...validation.SDLRule) Option {
	return func(o *options) { o.sdlRules = rules }
}

// WithScalars sets the registry used to coerce custom scalar literals.
func WithScalars(r *scalars.Registry) Option {
	return func(o *options) { o.scalars = r }
}

// New returns a Validator for schema. A nil schema is allowed; Validate then reports
// ErrNoSchema while ValidateSDL keeps working.
func New(schema *ast.Schema, opts ...Option) *Validator {
	o := options{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	if len(o.rules) == 0 {
		o.rules = validation.DefaultQueryRules()
	}
	if len(o.sdlRules) == 0 {
		o.sdlRules = validation.DefaultSDLRules()
	}
	if o.scalars == nil {
		o.scalars = scalars.Default()
	}

	v := &Validator{
		schema:      schema,
		rules:       o.rules,
		sdlRules:    o.sdlRules,
		scalars:     o.scalars,
		logger:      o.logger,
		tracer:      o.tracerProvider.Tracer(tracerName),
		hits:        atomic.NewInt64(0),
		misses:      atomic.NewInt64(0),
		validations: atomic.NewInt64(0),
	}
	if schema != nil {
		v.logger.Debug("schema loaded", zap.Int("types", len(schema.Types)), zap.Int("directives", len(schema.Directives)))
	}
	if o.cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		v.cache, _ = lru.New[uint64, Result](o.cacheSize)
	}
	return v
}

// LoadSchema builds a schema from SDL sources, with the GraphQL prelude included.
func LoadSchema(sources ...*ast.Source) (*ast.Schema, error) {
	if len(sources) == 0 {
		return nil, ErrNoSchema
	}
	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	return schema, nil
}

// Schema returns the schema documents are validated against.
func (v *Validator) Schema() *ast.Schema {
	return v.schema
}

// Validate parses src as an executable document and validates it against the schema.
func (v *Validator) Validate(ctx context.Context, src *ast.Source) Result {
	return v.run(ctx, "gqlvet.validate", "query", src, func(doc *language.Document) validation.List {
		return validation.ValidateQuery(v.schema, doc,
			validation.WithRules(v.rules...),
			validation.WithScalars(v.scalars),
		)
	})
}

// ValidateSDL parses src as a type-system document and runs the SDL rules on it.
func (v *Validator) ValidateSDL(ctx context.Context, src *ast.Source) Result {
	return v.run(ctx, "gqlvet.validate_sdl", "sdl", src, func(doc *language.Document) validation.List {
		return validation.ValidateSDL(doc, v.sdlRules...)
	})
}

// Stats returns the current counters.
func (v *Validator) Stats() Stats {
	return Stats{
		Hits:        v.hits.Load(),
		Misses:      v.misses.Load(),
		Validations: v.validations.Load(),
	}
}

// Purge empties the result cache.
func (v *Validator) Purge() {
	if v.cache != nil {
		v.cache.Purge()
	}
}

func (v *Validator) run(ctx context.Context, spanName, kind string, src *ast.Source, validate func(*language.Document) validation.List) Result {
	ctx, span := v.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("graphql.document.name", src.Name),
		attribute.String("graphql.document.kind", kind),
	))
	defer span.End()

	log := v.logger.With(zap.String("document", src.Name), zap.String("kind", kind))

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{Name: src.Name, Err: err}
	}
	if kind == "query" && v.schema == nil {
		span.SetStatus(codes.Error, ErrNoSchema.Error())
		return Result{Name: src.Name, Err: ErrNoSchema}
	}

	key := cacheKey(kind, src)
	if v.cache != nil {
		if res, ok := v.cache.Get(key); ok {
			v.hits.Inc()
			log.Debug("cache hit")
			span.SetAttributes(attribute.Bool("gqlvet.cached", true), attribute.Int("graphql.error_count", len(res.Errors)))
			res.Cached = true
			return res
		}
		v.misses.Inc()
		log.Debug("cache miss")
	}

	res := Result{Name: src.Name}
	doc, err := language.Parse(src)
	if err != nil {
		res.Err = fmt.Errorf("parsing %s: %w", src.Name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse error")
		log.Debug("parse failed", zap.Error(err))
	} else {
		v.validations.Inc()
		res.Errors = validate(doc)
		span.SetAttributes(attribute.Int("graphql.error_count", len(res.Errors)))
		log.Debug("validated", zap.Int("errors", len(res.Errors)))
	}

	if v.cache != nil {
		v.cache.Add(key, res)
	}
	return res
}

// cacheKey hashes the document kind, name and input. The kind keeps a file linted as SDL
// apart from the same file validated as a query.
func cacheKey(kind string, src *ast.Source) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(kind)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(src.Name)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(src.Input)
	return d.Sum64()
}
