package commands

import (
	"github.com/spf13/cobra"

	"github.com/shaungallagher/derived-attributes/am"
	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/logger"
	"github.com/shaungallagher/derived-attributes/sva"
)

// TriggersCmd represents the triggers command
var TriggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "Derive attributes and fire actions for true triggers",
	Long: `triggers - Evaluate a trigger table with side effects

Triggers are sentences carrying an action name and a parameter list.
Whenever a trigger evaluates to true, its action fires through the
logging handler with the resolved parameter values, synchronously and
in dependency-resolution order.

Examples:
  derived-attributes triggers -t monitors.csv -s metrics.json`,

	RunE: runTriggersCommand,
}

func init() {
	addInputFlags(TriggersCmd)
}

func runTriggersCommand(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	table, source := resolveInputs(cfg)

	triggers, err := loadTriggers(table)
	if err != nil {
		return errors.Wrap(err, "failed to load trigger table")
	}
	doc, err := loadSource(source)
	if err != nil {
		return err
	}

	handler := sva.LogHandler{Logger: logger.ComponentLogger("triggers")}
	engine, err := sva.NewTriggers(triggers, doc, handler, engineOptions(cfg))
	if err != nil {
		return errors.Wrap(err, "failed to build triggers engine")
	}
	result, err := engine.Derive()
	if err != nil {
		return errors.Wrap(err, "derivation failed")
	}

	format := cfg.Output.Format
	if jsonRequested(cmd) {
		format = "json"
	}
	return displayAttributes(result, format)
}
