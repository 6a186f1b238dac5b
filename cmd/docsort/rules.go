package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/loandesk/docsort/internal/cli"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the loaded classification rules",
		RunE:  runRules,
	}

	cmd.Flags().String("keywords", "", "path to the subcategory keyword CSV")
	cmd.Flags().String("categories", "", "path to the subcategory-to-category CSV")

	_ = viper.BindPFlag("classification.keywords", cmd.Flags().Lookup("keywords"))
	_ = viper.BindPFlag("classification.categories", cmd.Flags().Lookup("categories"))

	return cmd
}

func runRules(_ *cobra.Command, _ []string) error {
	classifier := buildClassifier()
	ruleset := classifier.Ruleset()

	fmt.Println(cli.FormatTitle("Classification rules (match order)"))
	for i, rule := range ruleset.Rules {
		fmt.Printf("  %2d. %s %s\n     %s\n",
			i+1,
			rule.Subcategory,
			cli.SubtleStyle.Render("["+ruleset.CategoryFor(rule.Subcategory)+"]"),
			cli.SubtleStyle.Render(strings.Join(rule.Keywords, ", ")))
	}

	if classifier.HasModel() {
		fmt.Println(cli.FormatSuccess("statistical fallback model loaded"))
	} else {
		fmt.Println(cli.FormatWarning("no statistical fallback model configured"))
	}
	return nil
}
