package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shaungallagher/derived-attributes/sva"
)

// VerbsCmd represents the verbs command
var VerbsCmd = &cobra.Command{
	Use:   "verbs",
	Short: "List the verb vocabulary",
	Long: `verbs - List every verb the engine understands

For each verb, shows how its object operand is resolved: as a literal,
as an eagerly evaluated attribute reference (joining), or as a JSONPath
or JSONata expression (query).`,

	RunE: runVerbsCommand,
}

func runVerbsCommand(cmd *cobra.Command, args []string) error {
	data := pterm.TableData{{"Verb", "Object"}}
	for _, name := range sva.VerbNames() {
		verb, _ := sva.LookupVerb(name)
		data = append(data, []string{name, string(verb.Kind)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
