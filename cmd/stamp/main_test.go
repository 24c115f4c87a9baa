package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type scriptedPrompt struct {
	answers []string
	asked   []string
}

func (p *scriptedPrompt) next(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return "", errAborted
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func (p *scriptedPrompt) Select(message string, _ []string) (string, error) {
	return p.next(message)
}

func (p *scriptedPrompt) Input(message, _ string) (string, error) {
	return p.next(message)
}

func run(t *testing.T, prompt PromptDriver, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCmd(deps{stderr: &stderr, prompt: prompt})
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "template file",
			args: []string{"render", "-t", "testdata/greeting.yaml", "-d", "testdata/profile.yaml"},
			want: `<p class="greeting">Hi Ada</p><span class="len">3</span>`,
		},
		{
			name: "bundled example",
			args: []string{"render", "-e", "profile", "-d", "testdata/profile.yaml", "-c", "testdata/stamp.toml"},
			want: `<h1>Ada</h1>`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, nil, tc.args...)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q in %q", tc.want, out)
			}
		})
	}
}

func TestRender_ToFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.html")
	out, err := run(t, nil, "render", "-e", "todo", "-o", target)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("expected confirmation, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<p class="count">0</p>`) {
		t.Fatalf("unexpected output %q", data)
	}
}

func TestRender_Errors(t *testing.T) {
	cases := [][]string{
		{"render"},
		{"render", "-t", "a.yaml", "-e", "profile"},
		{"render", "-e", "missing"},
		{"render", "-e", "profile", "-d", "testdata/nope.yaml"},
		{"render", "-e", "profile", "-c", "testdata/profile.yaml", "--log-level", "shout"},
	}
	for _, args := range cases {
		if _, err := run(t, nil, args...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestExamples(t *testing.T) {
	out, err := run(t, nil, "examples")
	if err != nil {
		t.Fatalf("examples: %v", err)
	}
	if diff := cmp.Diff([]string{"profile", "todo"}, strings.Fields(out)); diff != "" {
		t.Fatalf("examples mismatch (-want +got):\n%s", diff)
	}
}

func TestPlay(t *testing.T) {
	prompt := &scriptedPrompt{answers: []string{
		actionSet, "user.name", "Grace",
		actionSet, "user.active", "false",
		actionUnbind, "h1", "text",
		actionObserve, "user.name",
		actionObserve, "upper(user.name)",
		actionSet, "user.name", "Linus",
		actionUnbind, "blink", "text",
		actionQuit,
	}}
	out, err := run(t, prompt, "play", "-e", "profile", "-d", "testdata/profile.yaml")
	if err != nil {
		t.Fatalf("play: %v", err)
	}

	for _, want := range []string{
		"<h1>Grace</h1>",
		`class="profile inactive"`,
		"5 bindings left",
		"<h1>Grace</h1><p class=\"email\">ada@example.com</p><input name=\"name\"/><label><input type=\"checkbox\" name=\"active\"/> active</label><p class=\"greeting\">Hello, Linus!</p>",
		`no node matches "blink"`,
		`error: observer: signature: malformed expression: "user.name" is not a call`,
		"observing upper(user.name)",
		"observed upper(user.name) = LINUS",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPlay_Abort(t *testing.T) {
	prompt := &scriptedPrompt{}
	if _, err := run(t, prompt, "play", "-e", "todo"); err != nil {
		t.Fatalf("aborting the prompt must end play cleanly, got %v", err)
	}
}

func TestParseScalar(t *testing.T) {
	got := []any{parseScalar("42"), parseScalar("true"), parseScalar("null"), parseScalar("Ada"), parseScalar(""), parseScalar("1.5")}
	want := []any{42, true, nil, "Ada", "", 1.5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("parseScalar mismatch (-want +got):\n%s", diff)
	}
}
