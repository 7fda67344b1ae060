package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/shaungallagher/derived-attributes/am"
	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/sva"
	"github.com/shaungallagher/derived-attributes/sva/input"
)

var (
	tablePath  string
	sourcePath string
)

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&tablePath, "table", "t", "", "Sentence table path (.csv or .yaml)")
	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Source document path (JSON)")
}

// engineOptions builds sva.Options from the loaded configuration.
func engineOptions(cfg *am.Config) sva.Options {
	return sva.Options{
		PrivatePrefix: cfg.Engine.PrivatePrefix,
		DateLayouts:   cfg.Engine.DateLayouts,
	}
}

// resolveInputs applies config defaults to paths not given on the
// command line.
func resolveInputs(cfg *am.Config) (table, source string) {
	table, source = tablePath, sourcePath
	if table == "" {
		table = cfg.Input.Table
	}
	if source == "" {
		source = cfg.Input.Source
	}
	return table, source
}

// loadSource reads and parses the JSON source document.
func loadSource(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read source document %s", path)
	}
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse source document %s", path)
	}
	return doc, nil
}

// loadSentences reads a sentence table, dispatching on file extension.
func loadSentences(path string) ([]sva.Sentence, error) {
	builder := input.NewBuilder()
	switch tableFormat(path) {
	case "csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open sentence table %s", path)
		}
		defer file.Close()
		return builder.SentencesFromCSV(file)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read sentence table %s", path)
		}
		return builder.SentencesFromYAML(data)
	}
}

// loadTriggers reads a trigger table, dispatching on file extension.
func loadTriggers(path string) ([]sva.Trigger, error) {
	builder := input.NewBuilder()
	switch tableFormat(path) {
	case "csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open trigger table %s", path)
		}
		defer file.Close()
		return builder.TriggersFromCSV(file)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read trigger table %s", path)
		}
		return builder.TriggersFromYAML(data)
	}
}

func tableFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "csv"
	}
}

// displayAttributes renders a derived attribute map as a pterm table or
// JSON, depending on configuration.
func displayAttributes(result map[string]any, format string) error {
	if format == "json" {
		fmt.Println(oj.JSON(result, 2))
		return nil
	}

	attrs := make([]string, 0, len(result))
	for attr := range result {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	data := pterm.TableData{{"Attribute", "Value"}}
	for _, attr := range attrs {
		data = append(data, []string{attr, oj.JSON(result[attr])})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
