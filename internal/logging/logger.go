// Package logging provides the leveled console logger and the optional JSON
// log file. The Logger also implements event.Sink so the metadata and
// naming packages can report to it without writing to the console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/ebookmeta/internal/config"
	"github.com/backmassage/ebookmeta/internal/event"
	"github.com/backmassage/ebookmeta/internal/term"
)

// Level is the console verbosity.
type Level int

const (
	LevelError Level = iota // --quiet
	LevelInfo
	LevelDebug // -d
	LevelTrace // -dd
)

// LevelFor maps the quiet/debug flags onto a Level.
func LevelFor(cfg *config.Config) Level {
	switch {
	case cfg.Quiet:
		return LevelError
	case cfg.DebugLevel >= config.DebugTrace:
		return LevelTrace
	case cfg.DebugLevel == config.DebugOn:
		return LevelDebug
	}
	return LevelInfo
}

// Logger provides leveled, optionally colored console logging with an
// optional zap JSON file sink. Every entry reaches the file regardless of
// the console level.
type Logger struct {
	mu     sync.Mutex
	level  Level
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	runID string
	file  *os.File
	zap   *zap.Logger
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode, os.Stdout)

	l := &Logger{
		level:  LevelFor(cfg),
		out:    os.Stdout,
		errOut: os.Stderr,
		now:    time.Now,
		runID:  uuid.NewString(),
	}

	if cfg.LogFile != "" {
		if err := l.openFile(cfg.LogFile); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// newTestLogger writes to the given buffers with a fixed clock.
func newTestLogger(level Level, out, errOut io.Writer) *Logger {
	return &Logger{
		level:  level,
		out:    out,
		errOut: errOut,
		now:    func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
		runID:  "test-run",
	}
}

func (l *Logger) openFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)

	l.file = f
	l.zap = zap.New(core).With(zap.String("run_id", l.runID))
	return nil
}

// RunID identifies this run in the JSON log.
func (l *Logger) RunID() string { return l.runID }

// Level returns the console level.
func (l *Logger) Level() Level { return l.level }

// Enabled reports whether lvl reaches the console.
func (l *Logger) Enabled(lvl Level) bool { return lvl <= l.level }

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.zap.Sync()
	err := l.file.Close()
	l.file = nil
	l.zap = nil
	return err
}

func (l *Logger) line(lvl Level, tag, color, text string, fields ...zap.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.zap != nil {
		switch lvl {
		case LevelError:
			l.zap.Error(text, fields...)
		case LevelInfo:
			if tag == "WARN" {
				l.zap.Warn(text, fields...)
			} else {
				l.zap.Info(text, fields...)
			}
		default:
			l.zap.Debug(text, append(fields, zap.String("tag", tag))...)
		}
	}

	if lvl > l.level {
		return
	}
	out := l.out
	if lvl == LevelError {
		out = l.errOut
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	_, _ = io.WriteString(out, ts+" "+term.Paint(color, "["+tag+"]")+" "+text+"\n")
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(LevelInfo, "INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at INFO level with a green SUCCESS tag.
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(LevelInfo, "SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at INFO level with a yellow WARN tag.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(LevelInfo, "WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs to stderr (red). Shown even with --quiet.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(LevelError, "ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan).
func (l *Logger) Debug(format string, args ...interface{}) {
	l.line(LevelDebug, "DEBUG", term.Cyan, fmt.Sprintf(format, args...))
}

// Trace logs at TRACE level (gray).
func (l *Logger) Trace(format string, args ...interface{}) {
	l.line(LevelTrace, "TRACE", term.Gray, fmt.Sprintf(format, args...))
}

// Emit implements event.Sink: one console line at the level suited to the
// kind, and one structured entry in the JSON log.
func (l *Logger) Emit(e event.Event) {
	fields := eventFields(e)
	a := e.Attrs

	switch e.Kind {
	case event.ExtractStart:
		l.line(LevelDebug, "DEBUG", term.Cyan, "Extracting "+e.Path, fields...)
	case event.ExtractEnd:
		l.line(LevelTrace, "TRACE", term.Gray, fmt.Sprintf("Extracted %s (%s fields)", e.Path, a["fields"]), fields...)
	case event.FieldDefaulted:
		l.line(LevelTrace, "TRACE", term.Gray, fmt.Sprintf("%s: no %s, using %q", e.Path, a["key"], a["default"]), fields...)
	case event.CollisionDetected:
		l.line(LevelInfo, "WARN", term.Yellow, fmt.Sprintf("%s already exists, appending unique identifier", a["dest"]), fields...)
	case event.RenamePerformed:
		l.line(LevelDebug, "DEBUG", term.Cyan, fmt.Sprintf("%s --> %s", e.Path, a["dest"]), fields...)
	case event.RenameUnchanged:
		l.line(LevelDebug, "DEBUG", term.Cyan, "New filename == old filename: "+e.Path, fields...)
	case event.DryRun:
		l.line(LevelDebug, "DEBUG", term.Cyan, fmt.Sprintf("dry_run: %s --> %s", e.Path, a["dest"]), fields...)
	default:
		l.line(LevelTrace, "TRACE", term.Gray, string(e.Kind)+" "+e.Path, fields...)
	}
}

// eventFields flattens an event into zap fields in a stable order.
func eventFields(e event.Event) []zap.Field {
	fields := []zap.Field{zap.String("event", string(e.Kind)), zap.String("path", e.Path)}
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.String(k, e.Attrs[k]))
	}
	return fields
}

var _ event.Sink = (*Logger)(nil)
