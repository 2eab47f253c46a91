package asynclog

import (
	"fmt"
	"strings"
)

// Level is the severity of a log message. Levels are ordered from most to
// least severe: LevelFatal is the smallest value, LevelDebug the largest.
// A message is written when its level is at or below the logger threshold,
// so raising the threshold toward LevelDebug increases verbosity and
// lowering it toward LevelFatal suppresses everything but the most severe
// messages.
type Level int32

const (
	LevelFatal Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// String returns the bracketed-tag name of the level.
func (l Level) String() string {
	switch l {
	case LevelFatal:
		return "FATAL"
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (any case) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FATAL":
		return LevelFatal, nil
	case "ERROR":
		return LevelError, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "INFO":
		return LevelInfo, nil
	case "DEBUG":
		return LevelDebug, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
