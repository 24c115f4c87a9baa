package stamp

import (
	"github.com/goliatone/go-stamp/pkg/template"
)

// LoadTemplate loads a YAML template document compiled with the engine's
// factory.
func (e *Engine) LoadTemplate(path string) (*Template, error) {
	return template.LoadFile(path, e.factory)
}

// ParseTemplate compiles a YAML template document held in memory. source
// names the document in errors.
func (e *Engine) ParseTemplate(data []byte, source string) (*Template, error) {
	return template.LoadDocument(data, source, e.factory)
}
