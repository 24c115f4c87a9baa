package testsupport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/dom"
	"github.com/goliatone/go-stamp/pkg/scope"
	"github.com/goliatone/go-stamp/pkg/template"
)

// MustLoadTemplate loads a YAML template document. Testing helpers fail the
// test on error to keep contract tests concise.
func MustLoadTemplate(t *testing.T, path string, factory *bind.Factory) *template.Template {
	t.Helper()

	tpl, err := template.LoadFile(path, factory)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	return tpl
}

// LoadData reads a YAML or JSON data fixture into a map suitable for
// scope.NewModel. JSON is valid YAML, so both go through the YAML decoder.
func LoadData(path string) (map[string]any, error) {
	if path == "" {
		return nil, errors.New("testsupport: data path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read data: %w", err)
	}
	out := make(map[string]any)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: decode data: %w", err)
	}
	return out, nil
}

// MustLoadModel reads a data fixture into a fresh model.
func MustLoadModel(t *testing.T, path string) *scope.Model {
	t.Helper()

	data, err := LoadData(path)
	if err != nil {
		t.Fatalf("load data: %v", err)
	}
	return scope.NewModel(data)
}

// LogBuffer returns a JSON logger writing into the returned buffer at debug
// level.
func LogBuffer() (zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return zerolog.New(&buf).Level(zerolog.DebugLevel), &buf
}

// LogEntries decodes the JSON lines written by a LogBuffer logger.
func LogEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := make(map[string]any)
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

// Application is one recorded call of a Recorder's apply function.
type Application struct {
	Mode  bind.Mode
	Value any
}

// Recorder captures every call of its Apply function.
type Recorder struct {
	Calls []Application
}

// Apply is a bind.ApplyFunc that records the mode and value.
func (r *Recorder) Apply(_ bind.Target, _ []scope.Context, mode bind.Mode, value any, _ scope.Context) {
	r.Calls = append(r.Calls, Application{Mode: mode, Value: value})
}

// Values returns the recorded values in order.
func (r *Recorder) Values() []any {
	out := make([]any, len(r.Calls))
	for i, call := range r.Calls {
		out[i] = call.Value
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertRenderGolden renders node and compares it with the golden file at
// path, ignoring surrounding whitespace.
func AssertRenderGolden(t *testing.T, path string, node *dom.Node) {
	t.Helper()

	got := dom.RenderString(node)
	if WriteMaybeGolden(t, path, []byte(got+"\n")) {
		return
	}
	want := strings.TrimSpace(MustReadGoldenString(t, path))
	if diff := CompareGolden(want, got); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}
