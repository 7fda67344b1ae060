package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shaungallagher/derived-attributes/am"
	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/sva"
)

var rulesAny bool

// RulesCmd represents the rules command
var RulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Derive boolean rules and a combined verdict",
	Long: `rules - Evaluate the sentence table as a rules engine

Evaluates every sentence and keeps only the boolean-typed public results,
in computation order. The verdict combines them with "all" (default) or
"any" (--any).

Examples:
  derived-attributes rules -t fraud_rules.csv -s application.json
  derived-attributes rules -t fraud_rules.csv -s application.json --any`,

	RunE: runRulesCommand,
}

func init() {
	addInputFlags(RulesCmd)
	RulesCmd.Flags().BoolVar(&rulesAny, "any", false, "Pass when any rule passes (default: all must pass)")
}

func runRulesCommand(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	table, source := resolveInputs(cfg)

	sentences, err := loadSentences(table)
	if err != nil {
		return errors.Wrap(err, "failed to load sentence table")
	}
	doc, err := loadSource(source)
	if err != nil {
		return err
	}

	engine, err := sva.NewRules(sentences, doc, engineOptions(cfg))
	if err != nil {
		return errors.Wrap(err, "failed to build rules engine")
	}
	rules, err := engine.Derive()
	if err != nil {
		return errors.Wrap(err, "derivation failed")
	}

	verdict := sva.All(rules)
	combinator := "all"
	if rulesAny {
		verdict = sva.Any(rules)
		combinator = "any"
	}

	if jsonRequested(cmd) {
		fmt.Printf("{\"rules\": %v, \"combinator\": %q, \"verdict\": %v}\n", formatRules(rules), combinator, verdict)
		return nil
	}

	for i, rule := range rules {
		mark := pterm.Red("fail")
		if rule {
			mark = pterm.Green("pass")
		}
		fmt.Printf("  rule %d: %s\n", i+1, mark)
	}
	if verdict {
		pterm.Success.Printfln("verdict (%s): pass", combinator)
	} else {
		pterm.Error.Printfln("verdict (%s): fail", combinator)
	}
	return nil
}

func formatRules(rules []bool) string {
	out := "["
	for i, r := range rules {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%v", r)
	}
	return out + "]"
}
