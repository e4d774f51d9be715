package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(99):  "?",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestLoggerWritesFormattedLine(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{out: &buf, colorized: false, component: "export"}
	l.Infof("frame %d done", 7)

	got := buf.String()
	if !strings.Contains(got, "[INFO ]") {
		t.Errorf("output missing level tag: %q", got)
	}
	if !strings.Contains(got, "export: frame 7 done") {
		t.Errorf("output missing component/message: %q", got)
	}
}

func TestWithScopesComponent(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{out: &buf, colorized: false, component: "a"}
	scoped := l.With("b")
	scoped.Warnf("hi")

	if !strings.Contains(buf.String(), "b: hi") {
		t.Errorf("expected scoped component %q in output, got %q", "b", buf.String())
	}
}
