package template

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stamp/pkg/bind"
	"github.com/goliatone/go-stamp/pkg/nodepath"
)

// Document is the serialised form of a template.
//
//	markup: <div><h2></h2><input></div>
//	binds:
//	  - selector: h2
//	    property: text
//	    value: "[[user.name]]"
//	  - path: "0.1"
//	    property: value
//	    value: "{{user.name}}"
//	mounts:
//	  - selector: x-badge
//	markers:
//	  - path: "0.2"
type Document struct {
	Markup  string      `yaml:"markup" json:"markup"`
	Binds   []BindEntry `yaml:"binds" json:"binds"`
	Mounts  []NodeRef   `yaml:"mounts" json:"mounts"`
	Markers []NodeRef   `yaml:"markers" json:"markers"`
}

// NodeRef addresses a node by dotted path ("0.2.1") or selector. Path wins
// when both are set.
type NodeRef struct {
	Path     string `yaml:"path" json:"path"`
	Selector string `yaml:"selector" json:"selector"`
}

func (r NodeRef) path() (nodepath.Path, bool, error) {
	if strings.TrimSpace(r.Path) == "" {
		return nil, false, nil
	}
	p, err := nodepath.Parse(r.Path)
	if err != nil {
		return nil, true, fmt.Errorf("template: %w", err)
	}
	return p, true, nil
}

// BindEntry is a single binding in a Document.
type BindEntry struct {
	NodeRef  `yaml:",inline"`
	Property string `yaml:"property" json:"property"`
	Value    string `yaml:"value" json:"value"`
}

// ParseDocument decodes YAML (JSON being a subset) into a Document.
func ParseDocument(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("template: document %s is empty", source)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("template: parse %s: %w", source, err)
	}
	if strings.TrimSpace(doc.Markup) == "" {
		return Document{}, fmt.Errorf("template: document %s has no markup", source)
	}
	return doc, nil
}

// Compile turns a Document into a Template using factory for binds.
func Compile(doc Document, factory *bind.Factory) (*Template, error) {
	b := NewBuilder(doc.Markup, factory)
	for i, entry := range doc.Binds {
		p, hasPath, err := entry.path()
		if err != nil {
			return nil, err
		}
		switch {
		case hasPath:
			b.BindPath(p, entry.Property, entry.Value)
		case entry.Selector != "":
			b.Bind(entry.Selector, entry.Property, entry.Value)
		default:
			return nil, fmt.Errorf("template: bind %d (%s) needs a path or selector", i, entry.Property)
		}
	}
	for i, ref := range doc.Mounts {
		p, hasPath, err := ref.path()
		if err != nil {
			return nil, err
		}
		switch {
		case hasPath:
			b.options = append(b.options, WithMounts(p))
		case ref.Selector != "":
			b.Mount(ref.Selector)
		default:
			return nil, fmt.Errorf("template: mount %d needs a path or selector", i)
		}
	}
	for i, ref := range doc.Markers {
		p, hasPath, err := ref.path()
		if err != nil {
			return nil, err
		}
		if !hasPath {
			return nil, fmt.Errorf("template: marker %d needs a path", i)
		}
		b.Marker(p)
	}
	return b.Build()
}

// LoadDocument parses and compiles a template document.
func LoadDocument(data []byte, source string, factory *bind.Factory) (*Template, error) {
	doc, err := ParseDocument(data, source)
	if err != nil {
		return nil, err
	}
	return Compile(doc, factory)
}

// LoadFile reads and compiles a template document from disk.
func LoadFile(path string, factory *bind.Factory) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: read %s: %w", path, err)
	}
	return LoadDocument(data, path, factory)
}
