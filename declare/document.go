package declare

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"kvbind/transform"
)

// CurrentVersion is the only supported document version.
const CurrentVersion = "1"

// ErrUnknownFormat is returned for file extensions other than yaml, yml and toml.
var ErrUnknownFormat = errors.New("unknown document format")

// Document is the root of a binding document.
type Document struct {
	// Version of the document schema.
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`

	// Transformers defines transformers local to this document.
	Transformers []transform.Definition `yaml:"transformers,omitempty" toml:"transformers,omitempty"`

	// Bindings declares value bindings.
	Bindings []ValueDecl `yaml:"bindings,omitempty" toml:"bindings,omitempty"`

	// Actions declares action bindings.
	Actions []ActionDecl `yaml:"actions,omitempty" toml:"actions,omitempty"`
}

// ValueDecl declares a value binding between two named objects.
type ValueDecl struct {
	Name          string `yaml:"name,omitempty" toml:"name,omitempty"`
	Source        string `yaml:"source" toml:"source"`
	SourcePath    string `yaml:"source_path" toml:"source_path"`
	Target        string `yaml:"target" toml:"target"`
	TargetPath    string `yaml:"target_path" toml:"target_path"`
	TwoWay        bool   `yaml:"two_way,omitempty" toml:"two_way,omitempty"`
	RetainsTarget bool   `yaml:"retains_target,omitempty" toml:"retains_target,omitempty"`
	Transformer   string `yaml:"transformer,omitempty" toml:"transformer,omitempty"`
}

// ActionDecl declares an action binding.
type ActionDecl struct {
	Name    string `yaml:"name,omitempty" toml:"name,omitempty"`
	Source  string `yaml:"source" toml:"source"`
	KeyPath string `yaml:"key_path" toml:"key_path"`
	Target  string `yaml:"target" toml:"target"`
	Action  string `yaml:"action" toml:"action"`
}

// Label names the declaration in diagnostics.
func (d *ValueDecl) Label(i int) string {
	if d.Name != "" {
		return d.Name
	}

	return fmt.Sprintf("bindings[%d]", i)
}

// Label names the declaration in diagnostics, falling back to its index.
func (d *ActionDecl) Label(i int) string {
	if d.Name != "" {
		return d.Name
	}

	return fmt.Sprintf("actions[%d]", i)
}

// Format is a document serialization.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}

	return "yaml"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
