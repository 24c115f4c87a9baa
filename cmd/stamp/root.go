package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	stamp "github.com/goliatone/go-stamp"
	"github.com/goliatone/go-stamp/internal/logging"
	"github.com/goliatone/go-stamp/pkg/component"
	"github.com/goliatone/go-stamp/pkg/scope"
)

// deps are the collaborators commands reach for, swapped in tests.
type deps struct {
	stderr io.Writer
	prompt PromptDriver
}

func defaultDeps() deps {
	return deps{stderr: os.Stderr, prompt: newSurveyDriver()}
}

type sourceFlags struct {
	template string
	example  string
	data     string
	config   string
	logLevel string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "template document (YAML)")
	cmd.Flags().StringVarP(&f.example, "example", "e", "", "bundled template name ("+strings.Join(stamp.EmbeddedTemplateNames(), ", ")+")")
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "data document (YAML or JSON)")
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "component config (TOML or YAML)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level override")
}

func newRootCmd(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:          "stamp",
		Short:        "Stamp reactive templates against data",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(d), newPlayCmd(d), newExamplesCmd())
	return root
}

// session is a template stamped against a data model, shared by render and
// play.
type session struct {
	engine *stamp.Engine
	model  *scope.Model
	view   *stamp.View
}

func openSession(d deps, f sourceFlags) (*session, error) {
	logger := logging.New(d.stderr, logging.ProfileRuntime)
	if f.logLevel != "" {
		lvl, ok := logging.ParseLevel(f.logLevel)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", f.logLevel)
		}
		logger = logger.Level(lvl)
	}

	var cfg component.Config
	if f.config != "" {
		loaded, err := component.LoadConfig(f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	engine := stamp.New(stamp.WithLogger(logger), stamp.WithEqualityGuard(cfg.EqualityGuard))

	tpl, err := loadTemplate(engine, f)
	if err != nil {
		return nil, err
	}
	data, err := loadData(f.data)
	if err != nil {
		return nil, err
	}
	model := scope.NewModel(data)
	view, err := engine.View(tpl, model, stamp.Builtins())
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("binds", view.Instance.BindCount()).Msg("template stamped")
	return &session{engine: engine, model: model, view: view}, nil
}

func loadTemplate(engine *stamp.Engine, f sourceFlags) (*stamp.Template, error) {
	switch {
	case f.template != "" && f.example != "":
		return nil, fmt.Errorf("--template and --example are mutually exclusive")
	case f.template != "":
		return engine.LoadTemplate(f.template)
	case f.example != "":
		return engine.LoadEmbeddedTemplate(f.example)
	default:
		return nil, fmt.Errorf("one of --template or --example is required")
	}
}

func loadData(path string) (map[string]any, error) {
	out := make(map[string]any)
	if path == "" {
		return out, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode data %s: %w", path, err)
	}
	return out, nil
}

// parseScalar reads a value typed on the command line the way a YAML
// document would: numbers, booleans and null get their types, anything else
// stays a string.
func parseScalar(raw string) any {
	switch strings.TrimSpace(raw) {
	case "null", "~":
		return nil
	}
	var out any
	if err := yaml.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return raw
	}
	return out
}
