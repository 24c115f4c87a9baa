package component

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stamp/pkg/dom"
)

// Config controls how a controller picks its render root.
type Config struct {
	// LightDOM renders directly into the host element (or Root) instead of an
	// isolated shadow root.
	LightDOM bool `toml:"light_dom" yaml:"light_dom"`
	// DelegatesFocus is forwarded to shadow root creation.
	DelegatesFocus bool `toml:"delegates_focus" yaml:"delegates_focus"`
	// EqualityGuard skips re-applying bindings whose value did not change.
	EqualityGuard bool `toml:"equality_guard" yaml:"equality_guard"`
	// Root is an alternate mount point used when LightDOM is set.
	Root *dom.Node `toml:"-" yaml:"-"`
}

// LoadConfig reads a Config from a TOML or YAML file, picked by extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("component: load config %s: %w", path, err)
	}
	return ParseConfig(data, filepath.Ext(path))
}

// ParseConfig decodes data in format ("toml", "yaml" or "yml", with or
// without a leading dot).
func ParseConfig(data []byte, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("component: parse toml config: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("component: parse yaml config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("component: unsupported config format %q", format)
	}
	return cfg, nil
}
