/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/samwightt/gqlvet/pkg/diagnostic"
	"github.com/samwightt/gqlvet/pkg/language"
	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/samwightt/gqlvet/pkg/validator"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrValidationFailed is returned when a document fails validation.
// This is a sentinel error that indicates the document is invalid,
// not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

func convertValidationErrors(errs validation.List) []ValidationError {
	result := []ValidationError{}
	for _, err := range errs {
		valErr := ValidationError{
			Message: err.Message,
			Rule:    err.Rule,
		}
		if section, ok := err.Extensions["rule"].(string); ok {
			valErr.Section = section
		}
		if details, ok := err.Extensions["details"].(string); ok {
			valErr.Details = details
		}
		for _, loc := range err.Locations {
			valErr.Locations = append(valErr.Locations, Location(loc))
		}
		result = append(result, valErr)
	}
	return result
}

// convertParseError turns a syntax error into a finding so it is reported like the others.
func convertParseError(err error) ValidationError {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		return ValidationError{Message: err.Error()}
	}
	valErr := ValidationError{Message: gqlErr.Message, Rule: "Syntax"}
	for _, loc := range gqlErr.Locations {
		valErr.Locations = append(valErr.Locations, Location{Line: loc.Line, Column: loc.Column})
	}
	return valErr
}

func toValidationResult(src *ast.Source, res validator.Result) (ValidationResult, error) {
	out := ValidationResult{File: src.Name, Valid: res.Valid(), Errors: []ValidationError{}, source: src.Input}
	if res.Err != nil {
		var gqlErr *gqlerror.Error
		switch {
		case errors.As(res.Err, &gqlErr):
			out.Errors = append(out.Errors, convertParseError(res.Err))
		case errors.Is(res.Err, language.ErrEmptyDocument):
			out.Errors = append(out.Errors, ValidationError{Message: language.ErrEmptyDocument.Error(), Rule: "Syntax"})
		default:
			return out, res.Err
		}
		return out, nil
	}
	out.Errors = convertValidationErrors(res.Errors)
	return out, nil
}

// Validation Error Display
//
// Every finding carries the start and the end of the first token of each node it
// points at, so the snippet underlines the whole name. Messages that end with a
// "Did you mean ...?" hint get the hint moved to a help line, and findings tied to
// a section of the specification get a note linking to it.

// splitHint separates a trailing "Did you mean ...?" hint from a message.
func splitHint(message string) (string, string) {
	idx := strings.LastIndex(message, " Did you mean ")
	if idx < 0 || !strings.HasSuffix(message, "?") {
		return message, ""
	}
	return message[:idx], "did you mean " + message[idx+len(" Did you mean "):]
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(err ValidationError, sourceContent string, sourceName string) string {
	if sourceName != stdinName {
		return ""
	}
	// Check if content contains \! which is likely zsh escape
	if !strings.Contains(sourceContent, `\!`) {
		return ""
	}
	// Check if error is near a \! sequence
	if len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := lines[loc.Line-1]
	// Check if there's a \! at or near the error column
	col := loc.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gqlvet validate\n" +
			"       query { ... }\n" +
			"       EOF"
	}
	return ""
}

func toDiagnostic(err ValidationError, file, sourceContent string) diagnostic.Diagnostic {
	message, hint := splitHint(err.Message)
	if err.Rule != "" {
		message += " [" + err.Rule + "]"
	}
	d := diagnostic.Diagnostic{File: file, Message: message}
	for _, loc := range err.Locations {
		span := diagnostic.Span{Line: loc.Line, Column: loc.Column}
		if loc.LineEnd == loc.Line {
			span.ColumnEnd = loc.ColumnEnd
		}
		d.Spans = append(d.Spans, span)
	}

	// Check for zsh escape issue first
	if zshHelp := detectZshEscapeIssue(err, sourceContent, file); zshHelp != "" {
		d.Help = append(d.Help, zshHelp)
	} else if hint != "" {
		d.Help = append(d.Help, hint)
	}
	if err.Details != "" {
		d.Notes = append(d.Notes, "see "+err.Details)
	}
	return d
}

func formatValidationResultText(result ValidationResult) string {
	if result.Valid {
		return fmt.Sprintf("✓ %s is valid", result.File)
	}

	lines := strings.Split(result.source, "\n")

	var b strings.Builder
	if len(result.Errors) == 1 {
		fmt.Fprintf(&b, "✗ %s has 1 error:\n", result.File)
	} else {
		fmt.Fprintf(&b, "✗ %s has %d errors:\n", result.File, len(result.Errors))
	}
	for _, err := range result.Errors {
		b.WriteString(diagnostic.Render(toDiagnostic(err, result.File, result.source), lines))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// validateSources runs check on every source, at most limit at a time, keeping the
// input order in the output.
func validateSources(ctx context.Context, sources []*ast.Source, limit int, check func(context.Context, *ast.Source) validator.Result) ([]ValidationResult, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	results := make([]ValidationResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, src := range sources {
		g.Go(func() error {
			res, err := toValidationResult(src, check(ctx, src))
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printResults(cmd *cobra.Command, results []ValidationResult) error {
	renderer := render.Renderer[ValidationResult]{
		Data:       results,
		TextFormat: formatValidationResultText,
		Separator:  "\n\n",
	}
	output, err := renderer.Render(outputFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)

	for _, r := range results {
		if !r.Valid {
			return ErrValidationFailed
		}
	}
	return nil
}

// newValidator builds a Validator from the loaded settings.
func newValidator(schema *ast.Schema, extra ...validator.Option) *validator.Validator {
	opts := []validator.Option{
		validator.WithLogger(logger),
		validator.WithCacheSize(settings.CacheSize),
		validator.WithScalars(settings.scalarRegistry()),
	}
	return validator.New(schema, append(opts, extra...)...)
}

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate GraphQL queries against the schema",
		Long: `Validates GraphQL operations and fragments against the schema.

Documents can be given as file paths or globs, or piped via stdin.
Each file is validated on its own, several at a time.

Exit codes:
  0 - Every document is valid
  1 - A document has validation or parse errors, or the command failed

Output formats:
  text    Errors with source snippets and help lines
  json    [{"file": string, "valid": bool, "errors": [...]}]
  yaml    The same as json, as YAML`,
		Example: `  # Validate from a file
  gqlvet validate query.graphql

  # Validate from stdin
  echo "query { user { id } }" | gqlvet validate

  # JSON output for CI integration
  gqlvet validate 'src/*.graphql' -f json`,
		RunE: runValidateCmd,
	}

	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	schema, err := loadCliForSchema(settings.Schema)
	if err != nil {
		return err
	}
	rules, err := settings.queryRules()
	if err != nil {
		return err
	}

	sources, err := readSources(cmd, args)
	if err != nil {
		return err
	}

	v := newValidator(schema, validator.WithRules(rules...))

	results, err := validateSources(cmd.Context(), sources, settings.Concurrency, v.Validate)
	if err != nil {
		return err
	}

	stats := v.Stats()
	logger.Debug("validation finished",
		zap.Int("documents", len(sources)),
		zap.Int64("validations", stats.Validations),
		zap.Int64("cache_hits", stats.Hits))

	return printResults(cmd, results)
}
