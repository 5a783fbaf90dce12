package log

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString is the lenient variant of ParseLevel: unknown names map
// to DEBUG.
func LevelFromString(s string) Level {
	l, err := ParseLevel(s)
	if err != nil {
		return LevelDebug
	}
	return l
}

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "ERROR":
		return LevelError, nil
	case "NONE":
		return LevelNone, nil
	default:
		return LevelDebug, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger is a leveled logger. Children created with Named share the
// parent's level, so SetLevel on the root affects all of them.
type Logger struct {
	logger *log.Logger
	level  *Level
	tag    string
}

func New(out io.Writer, level Level) *Logger {
	lvl := level
	return &Logger{
		logger: log.New(out, "", 0), // No prefix, handled by format string
		level:  &lvl,
	}
}

// Named returns a child logger that prefixes every line with [tag].
func (l *Logger) Named(tag string) *Logger {
	return &Logger{logger: l.logger, level: l.level, tag: "[" + tag + "] "}
}

func (l *Logger) printf(lvl, format string, v ...interface{}) {
	l.logger.Printf(lvl+": "+l.tag+format, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if *l.level <= LevelDebug {
		l.printf("DEBUG", format, v...)
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	if *l.level <= LevelInfo {
		l.printf("INFO", format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	if *l.level <= LevelError {
		l.printf("ERROR", format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if *l.level <= LevelInfo { // Warnings are shown at Info level or higher
		l.printf("WARN", format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	*l.level = level
}

func (l *Logger) Level() Level {
	return *l.level
}
