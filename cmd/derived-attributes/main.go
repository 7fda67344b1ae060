package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaungallagher/derived-attributes/cmd/derived-attributes/commands"
	"github.com/shaungallagher/derived-attributes/logger"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:   "derived-attributes",
	Short: "Derive attributes from a JSON document using Subject-Verb-Object sentences",
	Long: `derived-attributes - a Subject-Verb-Object derivation engine.

Sentences are small declarative statements (attr, subject, verb, object)
authored as CSV or YAML rows. The engine resolves the dependency graph
between attributes, applies the verb vocabulary (comparisons, aggregates,
JSONPath and JSONata queries, boolean joins), and projects the results.

Available commands:
  attrs    - Derive the full public attribute map
  rules    - Derive only the boolean rules and a combined verdict
  triggers - Derive attributes and fire actions for true triggers
  verbs    - List the verb vocabulary

Examples:
  derived-attributes attrs -t sentences.csv -s source.json
  derived-attributes rules -t fraud_rules.csv -s application.json --any
  derived-attributes triggers -t monitors.csv -s metrics.json`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonOutput); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "JSON output (results and logs)")

	rootCmd.AddCommand(commands.AttrsCmd)
	rootCmd.AddCommand(commands.RulesCmd)
	rootCmd.AddCommand(commands.TriggersCmd)
	rootCmd.AddCommand(commands.VerbsCmd)

	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
