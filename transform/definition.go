package transform

import (
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"kvbind/primitive"
)

// Kind selects how a Definition is built.
type Kind string

const (
	KindLinear   Kind = "linear"
	KindLookup   Kind = "lookup"
	KindNegate   Kind = "negate"
	KindIdentity Kind = "identity"
)

// IsValid returns true if the kind is a recognized value.
func (k Kind) IsValid() bool {
	switch k {
	case KindLinear, KindLookup, KindNegate, KindIdentity:
		return true
	default:
		return false
	}
}

// DefinitionFile is the root of a transformer definition file.
type DefinitionFile struct {
	// Version of the definition schema.
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`

	// Transformers lists the declared transformers.
	Transformers []Definition `yaml:"transformers" toml:"transformers"`
}

// Definition declares a named transformer.
//
// Table keys of a lookup are text. Inputs are matched by their textual form,
// so the key "1" matches 1, 1.0 and "1", and "true" matches true. The reverse
// direction yields the key as a string.
type Definition struct {
	Name        string         `yaml:"name" toml:"name"`
	Kind        Kind           `yaml:"kind" toml:"kind"`
	Description string         `yaml:"description,omitempty" toml:"description,omitempty"`
	Scale       *float64       `yaml:"scale,omitempty" toml:"scale,omitempty"`
	Offset      float64        `yaml:"offset,omitempty" toml:"offset,omitempty"`
	Min         *float64       `yaml:"min,omitempty" toml:"min,omitempty"`
	Max         *float64       `yaml:"max,omitempty" toml:"max,omitempty"`
	Table       map[string]any `yaml:"table,omitempty" toml:"table,omitempty"`
}

// LoadFile loads and parses a YAML transformer definition file.
func LoadFile(path string) (*DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transformer file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML transformer definitions.
func Parse(data []byte) (*DefinitionFile, error) {
	var df DefinitionFile

	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse transformer YAML: %w", err)
	}

	if df.Version == "" {
		df.Version = "1"
	}

	return &df, nil
}

// Validate checks the definition without building it.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return errors.New("transformer name is empty")
	}

	if !d.Kind.IsValid() {
		return fmt.Errorf("transformer %q: unknown kind %q", d.Name, d.Kind)
	}

	switch d.Kind {
	case KindLinear:
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return fmt.Errorf("transformer %q: min %v is greater than max %v", d.Name, *d.Min, *d.Max)
		}
	case KindLookup:
		if len(d.Table) == 0 {
			return fmt.Errorf("transformer %q: lookup table is empty", d.Name)
		}
	}

	return nil
}

// Build validates the definition and constructs its Transformer.
func (d *Definition) Build() (Transformer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindLinear:
		scale := 1.0
		if d.Scale != nil {
			scale = *d.Scale
		}

		lo, hi := math.Inf(-1), math.Inf(1)
		if d.Min != nil {
			lo = *d.Min
		}

		if d.Max != nil {
			hi = *d.Max
		}

		return LinearClamped(scale, d.Offset, lo, hi), nil
	case KindLookup:
		return textLookup(d.Table), nil
	case KindNegate:
		return NegateBoolean, nil
	default:
		return Identity, nil
	}
}

// RegisterAll builds every definition and registers it into r. Invalid
// definitions are reported and skipped.
func RegisterAll(r *Registry, defs []Definition) []error {
	var errs []error

	for i := range defs {
		t, err := defs[i].Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if err := r.Register(defs[i].Name, t); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// textKinds are the conversions used to turn a lookup input into its key.
const textKinds = primitive.CategoryTextNumber | primitive.CategoryTextualBool | primitive.CategoryEnumString

// textLookup is a Lookup keyed by the textual form of its input.
func textLookup(table map[string]any) Transformer {
	keyed := make(map[any]any, len(table))
	for k, v := range table {
		keyed[k] = v
	}

	inner := Lookup(keyed)

	forward := func(v any) (any, error) {
		key, err := textKey(v)
		if err != nil {
			return nil, err
		}

		return inner.Transform(key)
	}

	var reverse Func
	if inner.AllowsReverseTransformation() {
		reverse = inner.ReverseTransform
	}

	return New(forward, reverse)
}

func textKey(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	if s, ok := v.(string); ok {
		return s, nil
	}

	out, err := primitive.Convert(v, reflect.TypeFor[string](), textKinds)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup key %T: %w", ErrUnexpectedType, v, err)
	}

	return out.String(), nil
}
