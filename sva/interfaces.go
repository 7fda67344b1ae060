package sva

import (
	"go.uber.org/zap"

	"github.com/shaungallagher/derived-attributes/logger"
)

// PathQuerier evaluates JSONPath expressions against a document.
// Implementations must be usable as pure functions of (doc, expr):
// the resolver calls them synchronously during evaluation.
type PathQuerier interface {
	// QueryOne returns the first match for expr, with found reporting
	// whether any match existed. A found nil is distinct from no match.
	QueryOne(doc any, expr string) (val any, found bool, err error)

	// QueryAll returns every match for expr in document order.
	QueryAll(doc any, expr string) ([]any, error)

	// ValidateSyntax checks expr without a document, for use at
	// sentence-construction time.
	ValidateSyntax(expr string) error
}

// ExprQuerier evaluates expressions in a richer functional query
// language (JSONata) against a document.
type ExprQuerier interface {
	Evaluate(doc any, expr string) (any, error)
	ValidateSyntax(expr string) error
}

// Param is one resolved trigger parameter, in declared order.
type Param struct {
	Name  string
	Value any
}

// ActionHandler receives trigger firings. The resolver invokes Fire
// synchronously, at most once per trigger whose value resolves to true,
// after that trigger's own dependencies are fully resolved. A handler
// needing queuing or retry owns that concern itself.
type ActionHandler interface {
	Fire(action string, params []Param) error
}

// HandlerFunc adapts a function to the ActionHandler interface.
type HandlerFunc func(action string, params []Param) error

// Fire calls fn(action, params).
func (fn HandlerFunc) Fire(action string, params []Param) error {
	return fn(action, params)
}

// NoOpHandler discards all firings.
type NoOpHandler struct{}

// Fire implements ActionHandler.
func (NoOpHandler) Fire(string, []Param) error { return nil }

// LogHandler logs each firing through a zap sugared logger. It is the
// default handler for the CLI triggers command.
type LogHandler struct {
	Logger *zap.SugaredLogger
}

// Fire implements ActionHandler.
func (h LogHandler) Fire(action string, params []Param) error {
	fields := []any{logger.FieldAction, action}
	for _, p := range params {
		fields = append(fields, p.Name, p.Value)
	}
	h.Logger.Infow("trigger fired", fields...)
	return nil
}
