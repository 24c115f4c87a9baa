package stamp

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed templates/*.yaml
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the bundled example template documents so callers
// can inspect or copy them.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// EmbeddedTemplateNames lists the bundled templates without extension.
func EmbeddedTemplateNames() []string {
	entries, err := fs.ReadDir(EmbeddedTemplates(), ".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	slices.Sort(names)
	return names
}

// LoadEmbeddedTemplate compiles the bundled template name with the engine's
// factory.
func (e *Engine) LoadEmbeddedTemplate(name string) (*Template, error) {
	file := name + ".yaml"
	data, err := fs.ReadFile(EmbeddedTemplates(), file)
	if err != nil {
		return nil, fmt.Errorf("stamp: embedded template %q: %w", name, err)
	}
	return e.ParseTemplate(data, file)
}
