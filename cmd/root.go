/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	configPath   string
	settings     *Config
	outputFormat render.Format
	logger       = zap.NewNop()
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlvet",
		Short: "Validate GraphQL documents and schemas",
		Long: `gqlvet checks GraphQL documents the way a server does before executing them.

validate runs the executable-document rules on queries, mutations, subscriptions and
fragments against a schema. lint runs the type-system rules on schema files on their own.
Every finding names the rule that reported it and, for executable documents, the section
of the GraphQL specification it enforces.

By default, gqlvet reads ./schema.graphql in the current directory.
Different schema files can be given with -s, repeated or as a glob.

Settings can also come from .gqlvet.yaml or GQLVET_ environment variables
(for example GQLVET_SCHEMA or GQLVET_SKIP_RULES). Flags win over both.

Output can be formatted as pretty text (default in terminals), plain text
(default when piping), or JSON and YAML for integration with other tools.`,
		Example: `  # Validate a query against ./schema.graphql
  gqlvet validate query.graphql

  # Validate every operation of a client against a split schema
  gqlvet validate 'ops/*.graphql' -s 'schema/*.graphql'

  # Only check variables
  gqlvet validate query.graphql --rule NoUndefinedVariables --rule NoUnusedVariables

  # Lint the schema itself
  gqlvet lint

  # List the rules and the spec sections they enforce
  gqlvet rules --kind query`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags
	flags := cmd.PersistentFlags()
	flags.StringSliceP("schema", "s", []string{"schema.graphql"}, "File path or glob of the GraphQL schema (can be repeated)")
	flags.StringP("format", "f", formatFlag(), "Output format: json, yaml, text, pretty (default: pretty if interactive, text otherwise)")
	flags.StringVar(&configPath, "config", "", "Config file (default: .gqlvet.yaml in the working directory)")
	flags.String("log-level", "", "Log to stderr at this level: debug, info, warn, error (default: off)")
	flags.StringArray("rule", nil, "Only run the given rule (can be repeated)")
	flags.StringArray("skip-rule", nil, "Do not run the given rule (can be repeated)")
	flags.StringArray("scalar", nil, "Custom scalar that accepts string literals (can be repeated)")
	flags.IntP("concurrency", "j", 0, "Number of documents validated at once (default: number of CPUs)")
	flags.Int("cache-size", validator.DefaultCacheSize, "Number of validation results cached, 0 disables the cache")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = loadConfig(cmd, configPath)
		if err != nil {
			return err
		}
		outputFormat, err = render.ParseFormat(settings.Format)
		if err != nil {
			return err
		}
		logger, err = newLogger(settings.LogLevel, cmd.ErrOrStderr())
		return err
	}

	// Add all subcommands
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewLintCmd())
	cmd.AddCommand(NewRulesCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		// Findings were already printed.
		if !errors.Is(err, ErrValidationFailed) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()
	_ = logger.Sync()

	return stdoutBuf.String(), stderrBuf.String(), err
}
