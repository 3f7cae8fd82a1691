/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/samwightt/gqlvet/pkg/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Check schema files against the type-system rules",
		Long: `Runs the type-system rules on GraphQL schema files: unique names, valid
extensions, interfaces implemented correctly, no circular non-null input objects, and so on.

Without arguments the files given by --schema are linted. Each file is checked on its own,
so an extension must be in the same file as the type it extends.

Exit codes:
  0 - Every file is valid
  1 - A file has errors, or the command failed`,
		Example: `  # Lint ./schema.graphql
  gqlvet lint

  # Lint a split schema, skipping one rule
  gqlvet lint 'schema/*.graphql' --skip-rule PossibleTypeExtensions`,
		RunE: runLintCmd,
	}

	return cmd
}

func runLintCmd(cmd *cobra.Command, args []string) error {
	rules, err := settings.sdlRules()
	if err != nil {
		return err
	}

	files := args
	if len(files) == 0 {
		files = settings.Schema
	}
	sources, err := readSources(cmd, files)
	if err != nil {
		return err
	}

	v := newValidator(nil, validator.WithSDLRules(rules...))
	results, err := validateSources(cmd.Context(), sources, settings.Concurrency, v.ValidateSDL)
	if err != nil {
		return err
	}

	logger.Debug("lint finished", zap.Int("files", len(sources)), zap.Int64("validations", v.Stats().Validations))

	return printResults(cmd, results)
}
