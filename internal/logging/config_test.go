package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{raw: "debug", want: zerolog.DebugLevel, ok: true},
		{raw: " WARNING ", want: zerolog.WarnLevel, ok: true},
		{raw: "off", want: zerolog.Disabled, ok: true},
		{raw: "", want: zerolog.InfoLevel},
		{raw: "loud", want: zerolog.InfoLevel},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = %v, %v", tc.raw, got, ok)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel:     "error",
		EnvLogNoColor:   "true",
		EnvLogTimestamp: "nope",
	}
	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnv(&cfg, func(key string) string { return env[key] })

	want := Config{Level: zerolog.ErrorLevel, NoColor: true, Timestamp: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := DefaultConfig(ProfileTest).Logger(&buf)
	logger.Debug().Str("function", "formatDate").Msg("function not found in context")
	logger.Trace().Msg("hidden")

	out := buf.String()
	if !strings.Contains(out, "function not found in context") || !strings.Contains(out, "function=formatDate") {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("trace must be filtered at debug level")
	}
}
