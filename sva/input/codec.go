package input

import (
	"encoding/csv"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/shaungallagher/derived-attributes/errors"
)

// readCSVRecords parses CSV data with a header row into field-name
// keyed records. Columns beyond the header's width are rejected by the
// csv reader; empty cells become empty strings.
func readCSVRecords(r io.Reader) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty sentence table")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV header")
	}

	var records []map[string]any
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CSV row %d", row)
		}
		record := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(fields) {
				record[name] = fields[i]
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// readYAMLRecords parses a YAML list of mappings into records.
func readYAMLRecords(data []byte) ([]map[string]any, error) {
	var records []map[string]any
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML sentence table")
	}
	return records, nil
}
