package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gaslint/gaslint/internal/report"
	"github.com/gaslint/gaslint/internal/rules"
	"github.com/spf13/cobra"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the gas optimization rule catalog",
		Long: `Rules lists every rule in the gas optimization catalog.

Each entry shows the tip number, the rule ID used by --disable and the
configuration file, the default severity, and the estimated per-occurrence
gas saving. Use 'gaslint explain <rule-id>' for the full write-up of a rule.

Examples:
  # List all rules
  gaslint rules

  # Emit the full catalog as a Markdown document
  gaslint rules --markdown`,
		Args: cobra.NoArgs,
		RunE: runRulesCmd,
	}

	cmd.Flags().BoolP("markdown", "m", false,
		"Output the full catalog as a Markdown document")

	return cmd
}

// runRulesCmd executes the rules command.
func runRulesCmd(cmd *cobra.Command, _ []string) error {
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	if markdown {
		_, err := report.NewTipsWriter(os.Stdout).WriteDocument()
		return err
	}

	tips := rules.Tips()

	fmt.Printf("Gas optimization rules (%d):\n\n", len(tips))
	fmt.Printf("  %-4s  %-22s  %-8s  %-12s  %s\n", "Tip", "Rule ID", "Severity", "Est. Savings", "Title")
	fmt.Println("  " + strings.Repeat("-", 96))

	for _, tip := range tips {
		fmt.Printf("  %-4d  %-22s  %-8s  %-12s  %s\n",
			tip.Number,
			tip.RuleID,
			tip.Severity().String(),
			formatGas(tip.SavedGas),
			tip.Title,
		)
	}

	fmt.Println("\nUse 'gaslint explain <rule-id>' for details on a rule.")

	return nil
}
