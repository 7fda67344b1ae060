package logger

// Standard field names for consistent structured logging across the
// module. Use these constants instead of raw strings.
const (
	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Sentence model
	FieldAttr    = "attr"
	FieldSubject = "subject"
	FieldVerb    = "verb"
	FieldObject  = "object"

	// Triggers
	FieldAction = "action"
	FieldParams = "params"

	// Results
	FieldValue = "value"
	FieldCount = "count"

	// Errors
	FieldError = "error"

	// Timing
	FieldDurationMS = "duration_ms"

	// Files
	FieldFile = "file"
	FieldRow  = "row"
)
