// Package logging sets up the process-wide logger the way the original
// desktop app did: one log file under a per-OS application data directory,
// mirrored to stdout. Unlike the desktop app, stdout here is a real
// terminal much of the time (CLI use), so output is colorized when a TTY is
// attached.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level controls which severities are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "?"
	}
}

var levelColor = map[Level]string{
	LevelDebug: "\x1b[90m",
	LevelInfo:  "\x1b[36m",
	LevelWarn:  "\x1b[33m",
	LevelError: "\x1b[31m",
}

const colorReset = "\x1b[0m"

// Logger is a minimal structured-ish logger: a severity, a component tag,
// and a printf-style message. It deliberately does not pull in a full
// structured logging framework — the desktop app used the stdlib log
// package directly, and the compositor keeps that texture.
type Logger struct {
	out       io.Writer
	colorized bool
	component string
}

// AppDataDir resolves the same per-OS base directory the desktop app used
// for its log file and config.
func AppDataDir(appName string) (string, error) {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(base, appName), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", appName), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, ".local", appName), nil
	}
}

// New opens (creating if needed) a log file under AppDataDir(appName) and
// returns a Logger that writes to both that file and stdout. The returned
// close function should be deferred by the caller.
func New(appName, component string) (*Logger, func(), error) {
	base, err := AppDataDir(appName)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir %s: %w", base, err)
	}

	logFile, err := os.OpenFile(filepath.Join(base, "log.txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	stdout := colorable.NewColorableStdout()
	colorized := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	l := &Logger{
		out:       io.MultiWriter(stdout, logFile),
		colorized: colorized,
		component: component,
	}
	return l, func() { logFile.Close() }, nil
}

// With returns a copy of the logger scoped to a different component tag.
func (l *Logger) With(component string) *Logger {
	return &Logger{out: l.out, colorized: l.colorized, component: component}
}

func (l *Logger) log(level Level, format string, args ...any) {
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	msg := fmt.Sprintf(format, args...)
	if l.colorized {
		fmt.Fprintf(l.out, "%s %s[%-5s]%s %s: %s\n", ts, levelColor[level], level, colorReset, l.component, msg)
		return
	}
	fmt.Fprintf(l.out, "%s [%-5s] %s: %s\n", ts, level, l.component, msg)
}

func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args...) }

// Fallback is a process-wide logger usable before New has been called
// (mirrors the desktop app's package-level log.SetOutput in init()).
var Fallback = log.New(os.Stderr, "[compositor] ", log.LstdFlags)
