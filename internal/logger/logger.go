package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var (
	levelNames = map[Level]string{
		DEBUG: "DEBUG",
		INFO:  "INFO",
		WARN:  "WARN",
		ERROR: "ERROR",
		FATAL: "FATAL",
	}

	levelColors = map[Level]string{
		DEBUG: "\033[36m", // Cyan
		INFO:  "\033[32m", // Green
		WARN:  "\033[33m", // Yellow
		ERROR: "\033[31m", // Red
		FATAL: "\033[35m", // Magenta
	}

	reset = "\033[0m"
)

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values report false.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG, true
	case "INFO":
		return INFO, true
	case "WARN", "WARNING":
		return WARN, true
	case "ERROR":
		return ERROR, true
	case "FATAL":
		return FATAL, true
	}
	return INFO, false
}

// Logger writes leveled, service-tagged lines. Child loggers created with
// Named share the parent's writer and lock.
type Logger struct {
	level     Level
	out       io.Writer
	mu        *sync.Mutex
	service   string
	useColors bool
	showTime  bool
	exit      func(int)
}

func New(service string) *Logger {
	level := INFO
	if lvl, ok := ParseLevel(os.Getenv("LOG_LEVEL")); ok {
		level = lvl
	}

	return &Logger{
		level:     level,
		out:       os.Stdout,
		mu:        &sync.Mutex{},
		service:   service,
		useColors: os.Getenv("LOG_COLORS") != "false",
		showTime:  true,
		exit:      os.Exit,
	}
}

// NewWithWriter builds a plain logger (no colors, no timestamp) for tests and
// for callers that redirect output.
func NewWithWriter(service string, out io.Writer, level Level) *Logger {
	return &Logger{
		level:   level,
		out:     out,
		mu:      &sync.Mutex{},
		service: service,
		exit:    os.Exit,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter("", io.Discard, FATAL+1)
}

// Named returns a child logger tagged "<parent>/<name>".
func (l *Logger) Named(name string) *Logger {
	child := *l
	if l.service == "" {
		child.service = name
	} else {
		child.service = l.service + "/" + name
	}
	return &child
}

func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	var buf strings.Builder

	if l.showTime {
		buf.WriteString(time.Now().Format("15:04:05"))
		buf.WriteString(" ")
	}

	if l.useColors {
		buf.WriteString(levelColors[level])
	}
	buf.WriteString(fmt.Sprintf("%-5s", levelNames[level]))
	if l.useColors {
		buf.WriteString(reset)
	}
	buf.WriteString(" ")

	if l.service != "" {
		if l.useColors {
			buf.WriteString("\033[90m") // Gray
		}
		buf.WriteString("[")
		buf.WriteString(l.service)
		buf.WriteString("]")
		if l.useColors {
			buf.WriteString(reset)
		}
		buf.WriteString(" ")
	}

	buf.WriteString(fmt.Sprintf(format, args...))

	l.mu.Lock()
	fmt.Fprintln(l.out, buf.String())
	l.mu.Unlock()

	if level == FATAL {
		l.exit(1)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() {
	log.SetOutput(&stdLogWriter{logger: l, level: INFO})
	log.SetFlags(0)
}

// Writer exposes the logger as an io.Writer at the given level, one line per
// Write. Used for http.Server.ErrorLog.
func (l *Logger) Writer(level Level) io.Writer {
	return &stdLogWriter{logger: l, level: level}
}

type stdLogWriter struct {
	logger *Logger
	level  Level
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	w.logger.log(w.level, "%s", strings.TrimSpace(string(p)))
	return len(p), nil
}

// StdLogger wraps the logger for APIs that want a *log.Logger.
func (l *Logger) StdLogger(level Level) *log.Logger {
	return log.New(l.Writer(level), "", 0)
}
