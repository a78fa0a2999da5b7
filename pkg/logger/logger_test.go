package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONOutputWithServiceField(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Env: "production", Output: &buf})

	log.Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"employee-api"`) {
		t.Fatalf("expected service field in output, got %s", out)
	}
	if !strings.Contains(out, `"message":"hello"`) {
		t.Fatalf("expected JSON message in output, got %s", out)
	}
}

func TestInit_LevelFiltersOutput(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "error", Env: "production", Output: &buf})

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info must be filtered at error level, got %s", buf.String())
	}

	log.Error().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("error must pass at error level, got %s", buf.String())
	}
}

func TestInit_OnlyFirstCallTakesEffect(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "info", Output: &first})
	log := Init(Options{Level: "info", Output: &second})

	log.Info().Msg("routed")
	if second.Len() != 0 {
		t.Fatalf("second Init must not rebuild the logger")
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("expected output on the first writer, got %s", first.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" info ", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
