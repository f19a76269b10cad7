package audit

import "time"

// Level classifies a process log entry.
type Level string

const (
	// LevelInfo records a successful operation.
	LevelInfo Level = "Info"
	// LevelError records an expected, caller-fixable failure.
	LevelError Level = "Error"
	// LevelException records an unexpected infrastructure fault.
	LevelException Level = "Exception"
)

// Entry is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Entry struct {
	Timestamp  time.Time
	Level      Level
	Action     string
	Message    string
	PersonName string
}
