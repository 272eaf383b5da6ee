package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaslint/gaslint/internal/rules"
	"github.com/spf13/cobra"
)

// NewExplainCmd creates the explain command.
func NewExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <rule-id|tip-number>",
		Short: "Explain a rule from the gas optimization catalog",
		Long: `Explain prints the full write-up of one catalog rule: what the pattern
costs, why, and how to rewrite it, with an illustrative before/after
fragment where one exists.

Rules can be addressed by rule ID or by tip number.

Examples:
  # Explain by rule ID
  gaslint explain cache-array-length

  # Explain by tip number
  gaslint explain 9`,
		Args: cobra.ExactArgs(1),
		RunE: runExplainCmd,
	}

	return cmd
}

// runExplainCmd executes the explain command.
func runExplainCmd(_ *cobra.Command, args []string) error {
	key := args[0]

	// Accept tip numbers as well as rule IDs
	var tip rules.Tip
	var ok bool
	if n, err := strconv.Atoi(key); err == nil {
		tip, ok = rules.TipByNumber(n)
	} else {
		tip, ok = rules.TipByRuleID(key)
	}
	if !ok {
		return fmt.Errorf("unknown rule %q (run 'gaslint rules' for the catalog)", key)
	}

	printTip(tip)
	return nil
}

// printTip writes the full tip write-up to stdout.
func printTip(tip rules.Tip) {
	fmt.Printf("Tip %d: %s\n", tip.Number, tip.Title)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nRule ID:      %s\n", tip.RuleID)
	fmt.Printf("Category:     %s\n", tip.Category)
	fmt.Printf("Severity:     %s\n", tip.Severity())
	fmt.Printf("Est. savings: %s\n", explainGas(tip.SavedGas))
	if tip.MinVersion != "" {
		fmt.Printf("Requires:     Solidity >= %s\n", tip.MinVersion)
	}

	fmt.Printf("\n%s\n", tip.Summary)

	if tip.Impact != "" {
		fmt.Printf("\nWhy it costs gas:\n  %s\n", tip.Impact)
	}
	if tip.Recommendation != "" {
		fmt.Printf("\nHow to fix:\n  %s\n", tip.Recommendation)
	}

	if tip.Before != "" {
		fmt.Println("\nBefore:")
		printIndented(tip.Before)
	}
	if tip.After != "" {
		fmt.Println("\nAfter:")
		printIndented(tip.After)
	}

	// The catalog's references close every write-up
	credits := rules.Credits()
	if len(credits) > 0 {
		fmt.Println("\nReferences:")
		for _, credit := range credits {
			if credit.Note != "" {
				fmt.Printf("  • %s (%s)\n", credit.URL, credit.Note)
			} else {
				fmt.Printf("  • %s\n", credit.URL)
			}
		}
	}
}

// explainGas renders the per-occurrence saving estimate for the write-up.
func explainGas(gas uint64) string {
	if gas == 0 {
		return "situational"
	}
	return fmt.Sprintf("~%d gas per occurrence", gas)
}

// printIndented writes a code fragment indented by four spaces.
func printIndented(code string) {
	for _, line := range strings.Split(code, "\n") {
		fmt.Printf("    %s\n", line)
	}
}
