package commands

import (
	"github.com/spf13/cobra"

	"github.com/shaungallagher/derived-attributes/am"
	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/logger"
	"github.com/shaungallagher/derived-attributes/sva"
)

// AttrsCmd represents the attrs command
var AttrsCmd = &cobra.Command{
	Use:   "attrs",
	Short: "Derive the full public attribute map",
	Long: `attrs - Derive attributes from a source document

Evaluates every sentence in the table against the source document and
prints the public attribute map. Attributes prefixed with the private
marker are evaluated but excluded from output.

Examples:
  derived-attributes attrs -t sentences.csv -s source.json
  derived-attributes attrs -t sentences.yaml -s source.json --json`,

	RunE: runAttrsCommand,
}

func init() {
	addInputFlags(AttrsCmd)
}

func runAttrsCommand(cmd *cobra.Command, args []string) error {
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

	engine, err := sva.NewAttributes(sentences, doc, engineOptions(cfg))
	if err != nil {
		return errors.Wrap(err, "failed to build derivation engine")
	}
	result, err := engine.Derive()
	if err != nil {
		return errors.Wrap(err, "derivation failed")
	}

	logger.Logger.Debugw("derivation complete",
		logger.FieldCount, len(result),
		logger.FieldFile, table,
	)

	format := cfg.Output.Format
	if jsonRequested(cmd) {
		format = "json"
	}
	return displayAttributes(result, format)
}

// jsonRequested reports whether the persistent --json flag was set.
func jsonRequested(cmd *cobra.Command) bool {
	flag := cmd.Root().PersistentFlags().Lookup("json")
	return flag != nil && flag.Value.String() == "true"
}
