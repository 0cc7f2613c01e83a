package logx

import (
	"encoding/json"
	"fmt"
)

// Level is a log severity. Lower values are more severe; a logger drops
// entries whose level is numerically greater than its configured minimum.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

// ParseLevel parses a string log level. Unknown strings parse as info.
func ParseLevel(s string) Level {
	switch s {
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "info"
	}
}

// MarshalJSON writes the level as its string form.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the string form produced by MarshalJSON.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("logx: level must be a string: %w", err)
	}
	*l = ParseLevel(s)
	return nil
}
