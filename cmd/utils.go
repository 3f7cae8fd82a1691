package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samwightt/gqlvet/pkg/validator"
	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

const stdinName = "stdin"

var tableStyle = lipgloss.NewStyle().PaddingRight(1)

func makeTable() *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return tableStyle
		})
}

const maxSuggestionDistance = 5

func findClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}

// expandPaths resolves glob patterns. Plain paths are kept as given so a missing file
// is reported by name.
func expandPaths(patterns []string) ([]string, error) {
	var paths []string
	for _, p := range patterns {
		if !strings.ContainsAny(p, "*?[") {
			paths = append(paths, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %s: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", p)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func readSource(path string) (*ast.Source, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &ast.Source{Name: path, Input: string(bytes)}, nil
}

// readSources reads the given files, or stdin when there are none.
func readSources(cmd *cobra.Command, args []string) ([]*ast.Source, error) {
	if len(args) == 0 {
		bytes, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return []*ast.Source{{Name: stdinName, Input: string(bytes)}}, nil
	}

	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}
	sources := make([]*ast.Source, 0, len(paths))
	for _, path := range paths {
		src, err := readSource(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func loadSchema(patterns []string) (*ast.Schema, error) {
	paths, err := expandPaths(patterns)
	if err != nil {
		return nil, err
	}
	var sources []*ast.Source
	for _, path := range paths {
		src, err := readSource(path)
		if err != nil {
			return nil, err
		}
		src.Name = filepath.Base(path)
		sources = append(sources, src)
	}
	return validator.LoadSchema(sources...)
}

func loadCliForSchema(patterns []string) (*ast.Schema, error) {
	schema, err := loadSchema(patterns)

	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) && errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file does not exist: %s", pathErr.Path)
		}
		if errors.Is(err, validator.ErrNoSchema) {
			return nil, errors.New("no schema files given, use --schema")
		}
		var parsingError *gqlerror.Error

		if errors.As(err, &parsingError) {
			return nil, fmt.Errorf("GraphQL schema parsing error: %v", parsingError)
		}

		return nil, fmt.Errorf("unexpected error: %v", err)
	}

	return schema, nil
}
