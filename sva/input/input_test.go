package input

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaungallagher/derived-attributes/errors"
	"github.com/shaungallagher/derived-attributes/sva"
)

func TestSentencesFromRecords(t *testing.T) {
	b := NewBuilder()

	sentences, err := b.SentencesFromRecords([]map[string]any{
		{"attr": "_count", "subject": "source", "verb": "parse_len", "obj": "$.items[*]"},
		{"attr": "enough", "subject": "_count", "verb": ">", "obj": 3, "notes": "ignored column"},
		{"attr": "blank_obj", "subject": "_count", "verb": "len", "obj": "  "},
	})
	require.NoError(t, err)
	require.Len(t, sentences, 3)

	assert.Equal(t, "_count", sentences[0].Attr)
	assert.Equal(t, "$.items[*]", sentences[0].Object)
	// Typed objects from record input survive as-is.
	assert.Equal(t, 3, sentences[1].Object)
	// Whitespace-only objects normalize to nil.
	assert.Nil(t, sentences[2].Object)
}

func TestSentencesFromRecords_Errors(t *testing.T) {
	b := NewBuilder()

	cases := []struct {
		name     string
		record   map[string]any
		sentinel error
		contains string
	}{
		{
			name:     "missing attr",
			record:   map[string]any{"subject": "source", "verb": "parse", "obj": "$.a"},
			contains: "missing attr",
		},
		{
			name:     "missing subject",
			record:   map[string]any{"attr": "a", "verb": "parse", "obj": "$.a"},
			contains: "missing subject",
		},
		{
			name:     "missing verb",
			record:   map[string]any{"attr": "a", "subject": "source", "obj": "$.a"},
			contains: "missing verb",
		},
		{
			name:     "unknown verb",
			record:   map[string]any{"attr": "a", "subject": "source", "verb": "frobnicate"},
			sentinel: errors.ErrUnknownVerb,
		},
		{
			name:     "invalid query syntax",
			record:   map[string]any{"attr": "a", "subject": "source", "verb": "parse", "obj": "$.records[?(@.x"},
			sentinel: errors.ErrInvalidQuerySyntax,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.SentencesFromRecords([]map[string]any{tc.record})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "record 0")
			if tc.sentinel != nil {
				assert.True(t, errors.Is(err, tc.sentinel))
			}
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
		})
	}
}

func TestTriggersFromRecords_Params(t *testing.T) {
	b := NewBuilder()

	triggers, err := b.TriggersFromRecords([]map[string]any{
		{"attr": "_rate", "subject": "source", "verb": "parse", "obj": "$.rate"},
		{"attr": "hot", "subject": "_rate", "verb": ">", "obj": 0.5,
			"action": "page", "params": "_rate , _host"},
		{"attr": "warm", "subject": "_rate", "verb": ">", "obj": 0.2,
			"action": "note", "params": []any{"_rate"}},
	})
	require.NoError(t, err)
	require.Len(t, triggers, 3)

	assert.Empty(t, triggers[0].Action)
	assert.Equal(t, []string{"_rate", "_host"}, triggers[1].Params)
	assert.Equal(t, []string{"_rate"}, triggers[2].Params)
}

func TestTriggersFromRecords_ParamsWithoutAction(t *testing.T) {
	b := NewBuilder()

	_, err := b.TriggersFromRecords([]map[string]any{
		{"attr": "hot", "subject": "source", "verb": "parse", "obj": "$.rate", "params": "_rate"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParamsWithoutAction))
}

func TestSentencesFromCSV_FraudRules(t *testing.T) {
	f, err := os.Open("testdata/fraud_rules.csv")
	require.NoError(t, err)
	defer f.Close()

	sentences, err := NewBuilder().SentencesFromCSV(f)
	require.NoError(t, err)
	require.Len(t, sentences, 7)

	source := map[string]any{
		"application": map[string]any{
			"annual_income": float64(85000),
			"debts": []any{
				map[string]any{"balance": float64(12000)},
				map[string]any{"balance": float64(3500)},
			},
		},
		"credit_report": map[string]any{
			"delinquencies": []any{
				map[string]any{"age_months": 18},
			},
			"debts": []any{
				map[string]any{"balance": float64(15500)},
			},
		},
	}

	rules, err := sva.NewRules(sentences, source, sva.Options{})
	require.NoError(t, err)
	verdicts, err := rules.Derive()
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, true}, verdicts)
	assert.True(t, sva.All(verdicts))
}

func TestSentencesFromCSV_Malformed(t *testing.T) {
	b := NewBuilder()

	_, err := b.SentencesFromCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty sentence table")

	ragged := "attr,subject,verb,obj\n_a,source,parse,$.a,extra\n"
	_, err = b.SentencesFromCSV(strings.NewReader(ragged))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

type capturedFiring struct {
	action string
	params []sva.Param
}

type captureHandler struct {
	calls []capturedFiring
}

func (h *captureHandler) Fire(action string, params []sva.Param) error {
	h.calls = append(h.calls, capturedFiring{action: action, params: params})
	return nil
}

func TestTriggersFromCSV_Monitoring(t *testing.T) {
	f, err := os.Open("testdata/monitoring_triggers.csv")
	require.NoError(t, err)
	defer f.Close()

	triggers, err := NewBuilder().TriggersFromCSV(f)
	require.NoError(t, err)
	require.Len(t, triggers, 6)

	source := map[string]any{
		"host": "web-1",
		"metrics": []any{
			map[string]any{"error_rate": 0.01},
			map[string]any{"error_rate": 0.09},
		},
		"disk": map[string]any{"used_pct": float64(95)},
	}

	handler := &captureHandler{}
	tr, err := sva.NewTriggers(triggers, source, handler, sva.Options{})
	require.NoError(t, err)
	result, err := tr.Derive()
	require.NoError(t, err)

	assert.Equal(t, true, result["error_rate_high"])
	assert.Equal(t, true, result["disk_nearly_full"])

	require.Len(t, handler.calls, 2)
	assert.Equal(t, "page_oncall", handler.calls[0].action)
	assert.Equal(t, []sva.Param{
		{Name: "_host", Value: "web-1"},
		{Name: "_max_error_rate", Value: 0.09},
	}, handler.calls[0].params)
	assert.Equal(t, "notify_infra", handler.calls[1].action)
	assert.Equal(t, []sva.Param{{Name: "_host", Value: "web-1"}}, handler.calls[1].params)
}

func TestTriggersFromYAML(t *testing.T) {
	table := []byte(`
- attr: _total
  subject: source
  verb: parse_sum
  obj: $.orders[*].amount
- attr: big_spender
  subject: _total
  verb: ">"
  obj: 1000
  action: offer_discount
  params:
    - _total
`)
	triggers, err := NewBuilder().TriggersFromYAML(table)
	require.NoError(t, err)
	require.Len(t, triggers, 2)

	// YAML scalars keep their types.
	assert.Equal(t, 1000, triggers[1].Object)
	assert.Equal(t, []string{"_total"}, triggers[1].Params)

	_, err = NewBuilder().SentencesFromYAML([]byte("attr: not-a-list"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YAML")
}
