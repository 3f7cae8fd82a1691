/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlvet/pkg/render"
	"github.com/samwightt/gqlvet/pkg/validation"
	"github.com/spf13/cobra"
)

func formatRuleText(r RuleInfo) string {
	if r.Section != "" {
		return fmt.Sprintf("%s %s # %s", r.Kind, r.Name, r.Section)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Name)
}

func formatRulesPretty(rules []RuleInfo) string {
	tbl := makeTable()

	for _, r := range rules {
		tbl.Row(r.Kind, r.Name, r.Section, r.URL)
	}
	tbl.Headers("kind", "name", "section", "url")

	return tbl.String()
}

func NewRulesCmd() *cobra.Command {
	var kindFilter string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the validation rules",
		Long: `Lists every rule gqlvet runs, in the order it runs them.

Query rules check executable documents (gqlvet validate) and name the section of the
GraphQL specification they enforce. SDL rules check schema files (gqlvet lint).
Any listed name can be passed to --rule or --skip-rule.`,
		Example: `  # All rules
  gqlvet rules

  # Only the rules used by validate, as JSON
  gqlvet rules --kind query -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind validation.Kind
			switch kindFilter {
			case "":
			case string(validation.KindQuery), string(validation.KindSDL):
				kind = validation.Kind(kindFilter)
			default:
				return fmt.Errorf("invalid kind: %s (valid: query, sdl)", kindFilter)
			}

			rules := []RuleInfo{}
			for _, info := range validation.Catalog() {
				if kind != "" && info.Kind != kind {
					continue
				}
				rules = append(rules, RuleInfo{
					Name:    info.Name,
					Kind:    string(info.Kind),
					Section: info.Section,
					URL:     info.URL,
				})
			}

			renderer := render.Renderer[RuleInfo]{
				Data:         rules,
				TextFormat:   formatRuleText,
				PrettyFormat: formatRulesPretty,
			}

			output, err := renderer.Render(outputFormat)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFilter, "kind", "", "Only list rules of this kind: query or sdl")

	return cmd
}
