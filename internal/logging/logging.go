package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	off
)

func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return Debug
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

type Logger struct {
	min       Level
	json      bool
	component string
	mu        *sync.Mutex
	out       io.Writer
}

// New returns a logger writing human lines to stderr, or JSON objects to stdout.
func New(level string, jsonOut bool) *Logger {
	out := io.Writer(os.Stderr)
	if jsonOut {
		out = os.Stdout
	}
	return NewWriter(out, level, jsonOut)
}

// NewWriter is New with an explicit destination.
func NewWriter(out io.Writer, level string, jsonOut bool) *Logger {
	return &Logger{min: ParseLevel(level), json: jsonOut, out: out, mu: &sync.Mutex{}}
}

// Nop discards everything. Packages use it when the caller passes no logger.
func Nop() *Logger {
	return &Logger{min: off, out: io.Discard, mu: &sync.Mutex{}}
}

// With returns a logger that tags every line with the component name.
func (l *Logger) With(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

func (l *Logger) Enabled(v Level) bool { return l != nil && v >= l.min }

func (l *Logger) Debugf(format string, a ...any) { l.log(Debug, format, a...) }
func (l *Logger) Infof(format string, a ...any)  { l.log(Info, format, a...) }
func (l *Logger) Warnf(format string, a ...any)  { l.log(Warn, format, a...) }
func (l *Logger) Errorf(format string, a ...any) { l.log(Error, format, a...) }

func (l *Logger) log(level Level, format string, a ...any) {
	if !l.Enabled(level) {
		return
	}
	msg := fmt.Sprintf(format, a...)
	lvl := levelString(level)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.json {
		payload := map[string]any{
			"ts":    time.Now().Format(time.RFC3339Nano),
			"level": lvl,
			"msg":   msg,
		}
		if l.component != "" {
			payload["component"] = l.component
		}
		_ = json.NewEncoder(l.out).Encode(payload)
		return
	}
	if l.component != "" {
		fmt.Fprintf(l.out, "%s\t%s\t%s\n", strings.ToUpper(lvl), l.component, msg)
		return
	}
	fmt.Fprintf(l.out, "%s\t%s\n", strings.ToUpper(lvl), msg)
}

func levelString(l Level) string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}
