package logger

import "sync"

// Logger provides structured logging with levels. One instance is created in
// main and injected by pointer into every pipeline stage, so there is no
// process-wide mutable logging state.

type Logger struct {
	MinLevel LogLevel
	mu       sync.Mutex
}

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)
