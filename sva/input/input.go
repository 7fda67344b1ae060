// Package input constructs validated sentence and trigger tables from
// CSV, YAML, and record-map data. Field errors surface one record at a
// time, before any evaluation: callers decide whether to abort the batch
// or skip the offending row.
package input

import (
	"io"
	"strings"

	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/sva"
	"github.com/shaungallagher/derived-attributes/sva/queryjson"
)

// Record field names recognized by the builder. Unknown fields (such as
// a notes column kept for the rule authors) are ignored.
const (
	FieldAttr    = "attr"
	FieldSubject = "subject"
	FieldVerb    = "verb"
	FieldObject  = "obj"
	FieldAction  = "action"
	FieldParams  = "params"
)

// Builder constructs validated sentences and triggers. The zero value
// is not usable; use NewBuilder or NewBuilderWith.
type Builder struct {
	path sva.PathQuerier
	expr sva.ExprQuerier
}

// NewBuilder creates a builder using the default query engines.
func NewBuilder() *Builder {
	return NewBuilderWith(queryjson.NewJSONPath(), queryjson.NewJSONata())
}

// NewBuilderWith creates a builder with custom syntax validators. Nil
// validators skip the corresponding syntax check.
func NewBuilderWith(path sva.PathQuerier, expr sva.ExprQuerier) *Builder {
	return &Builder{path: path, expr: expr}
}

// SentencesFromRecords builds sentences from field-name keyed records.
func (b *Builder) SentencesFromRecords(records []map[string]any) ([]sva.Sentence, error) {
	sentences := make([]sva.Sentence, 0, len(records))
	for i, record := range records {
		s, err := b.sentenceFromRecord(record)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}

// TriggersFromRecords builds triggers from field-name keyed records.
// The params field may be a delimited string or a sequence of names.
func (b *Builder) TriggersFromRecords(records []map[string]any) ([]sva.Trigger, error) {
	triggers := make([]sva.Trigger, 0, len(records))
	for i, record := range records {
		s, err := b.sentenceFromRecord(record)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		t := sva.Trigger{
			Sentence: s,
			Action:   stringField(record, FieldAction),
			Params:   paramsField(record),
		}
		if err := t.Validate(b.path, b.expr); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		triggers = append(triggers, t)
	}
	return triggers, nil
}

// SentencesFromCSV builds sentences from CSV data with a header row
// naming at least attr, subject, and verb.
func (b *Builder) SentencesFromCSV(r io.Reader) ([]sva.Sentence, error) {
	records, err := readCSVRecords(r)
	if err != nil {
		return nil, err
	}
	return b.SentencesFromRecords(records)
}

// TriggersFromCSV builds triggers from CSV data. The params column
// holds comma-separated attribute names.
func (b *Builder) TriggersFromCSV(r io.Reader) ([]sva.Trigger, error) {
	records, err := readCSVRecords(r)
	if err != nil {
		return nil, err
	}
	return b.TriggersFromRecords(records)
}

// SentencesFromYAML builds sentences from a YAML list of records.
func (b *Builder) SentencesFromYAML(data []byte) ([]sva.Sentence, error) {
	records, err := readYAMLRecords(data)
	if err != nil {
		return nil, err
	}
	return b.SentencesFromRecords(records)
}

// TriggersFromYAML builds triggers from a YAML list of records.
func (b *Builder) TriggersFromYAML(data []byte) ([]sva.Trigger, error) {
	records, err := readYAMLRecords(data)
	if err != nil {
		return nil, err
	}
	return b.TriggersFromRecords(records)
}

func (b *Builder) sentenceFromRecord(record map[string]any) (sva.Sentence, error) {
	s := sva.Sentence{
		Attr:    stringField(record, FieldAttr),
		Subject: stringField(record, FieldSubject),
		Verb:    stringField(record, FieldVerb),
		Object:  objectField(record),
	}
	if s.Attr == "" {
		return sva.Sentence{}, errors.New("missing attr field")
	}
	if s.Subject == "" {
		return sva.Sentence{}, errors.Newf("sentence %q: missing subject field", s.Attr)
	}
	if s.Verb == "" {
		return sva.Sentence{}, errors.Newf("sentence %q: missing verb field", s.Attr)
	}
	if err := s.Validate(b.path, b.expr); err != nil {
		return sva.Sentence{}, err
	}
	return s, nil
}

func stringField(record map[string]any, field string) string {
	v, ok := record[field]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// objectField preserves typed objects (numbers, booleans, lists) from
// YAML and record input; empty strings normalize to nil so verbs that
// ignore their object see a missing one.
func objectField(record map[string]any) any {
	v, ok := record[FieldObject]
	if !ok || v == nil {
		return nil
	}
	if s, isString := v.(string); isString {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil
		}
		return trimmed
	}
	return v
}

func paramsField(record map[string]any) []string {
	v, ok := record[FieldParams]
	if !ok || v == nil {
		return nil
	}
	switch x := v.(type) {
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" {
			return nil
		}
		parts := strings.Split(trimmed, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	case []string:
		return x
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			if s, isString := item.(string); isString {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return parts
	default:
		return nil
	}
}
