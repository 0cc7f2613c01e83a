package logx

import "time"

// Entry is a structured log record as handed to transports. All fields
// survive a marshal/unmarshal round trip through the JSON transports.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Service   string         `json:"service,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	Error     string         `json:"error,omitempty"`
	Trace     string         `json:"trace,omitempty"`
}

// Field is a structured log field.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Err builds the conventional error field. The logger extracts the message
// into Entry.Error and, for apperr values, the captured stack into
// Entry.Trace.
func Err(err error) Field {
	return Field{Key: errorFieldKey, Value: err}
}

// errorFieldKey is the reserved field key the logger folds into Entry.Error.
const errorFieldKey = "error"
