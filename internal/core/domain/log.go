package domain

// LogLevel is the severity of a LogRecord.
type LogLevel int

const (
	LevelDebug LogLevel = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// Field is a single key/value pair attached to a LogRecord.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// LogRecord is one structured log line.
type LogRecord struct {
	Level   LogLevel
	Message string
	Fields  []Field
}
