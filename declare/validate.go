package declare

import (
	"fmt"

	"kvbind/internal/diagnostic"
	"kvbind/internal/match"
	"kvbind/keypath"
	"kvbind/transform"
)

const maxSuggestions = 3

// Validate checks doc structurally. Transformer names must be defined in
// the document or resolvable through reg; a nil reg means transform.Default.
// Object names are not checked here since they are only known to Apply.
func Validate(doc *Document, reg transform.Resolver) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if doc == nil {
		res.AddError("document_is_nil", "document is nil", "", "")
		return res
	}

	if doc.Version != CurrentVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported version %q, expected %q", doc.Version, CurrentVersion), "", "version")
	}

	local := validateTransformers(res, doc.Transformers)
	resolver := transform.Chain(local, resolverOrDefault(reg))
	names := map[string]string{}

	for i := range doc.Bindings {
		validateValueDecl(res, &doc.Bindings[i], i, resolver, names)
	}

	for i := range doc.Actions {
		validateActionDecl(res, &doc.Actions[i], i, names)
	}

	return res
}

// validateTransformers builds the inline definitions into a registry,
// reporting invalid and duplicate ones.
func validateTransformers(res *diagnostic.Diagnostics, defs []transform.Definition) *transform.Registry {
	local := transform.NewRegistry()

	for i := range defs {
		def := &defs[i]
		subject := def.Name
		if subject == "" {
			subject = fmt.Sprintf("transformers[%d]", i)
		}

		if local.Has(def.Name) {
			res.AddError("duplicate_transformer", fmt.Sprintf("duplicate transformer %q", def.Name), subject, "name")
			continue
		}

		t, err := def.Build()
		if err != nil {
			res.AddError("invalid_transformer", err.Error(), subject, "kind")
			continue
		}

		_ = local.Register(def.Name, t)
	}

	return local
}

func validateValueDecl(res *diagnostic.Diagnostics, d *ValueDecl, i int, resolver transform.Resolver, names map[string]string) {
	label := d.Label(i)

	checkName(res, d.Name, label, names)

	if d.Source == "" {
		res.AddError("empty_source", "source object is empty", label, "source")
	}

	if d.Target == "" {
		res.AddError("empty_target", "target object is empty", label, "target")
	}

	if _, err := keypath.Parse(d.SourcePath); err != nil {
		res.AddError("invalid_source_path", err.Error(), label, "source_path")
	}

	if _, err := keypath.Parse(d.TargetPath); err != nil {
		res.AddError("invalid_target_path", err.Error(), label, "target_path")
	}

	if d.Transformer != "" {
		if _, err := resolver.Lookup(d.Transformer); err != nil {
			res.AddError("unknown_transformer", fmt.Sprintf("unknown transformer %q", d.Transformer), label, "transformer").
				WithSuggestions(match.Suggest(d.Transformer, knownNames(resolver), maxSuggestions)...)
		}
	}

	if d.Source != "" && d.Source == d.Target && d.SourcePath == d.TargetPath {
		res.AddWarning("self_binding",
			fmt.Sprintf("%s.%s is bound to itself", d.Source, d.SourcePath), label, "target_path")
	}
}

func validateActionDecl(res *diagnostic.Diagnostics, d *ActionDecl, i int, names map[string]string) {
	label := d.Label(i)

	checkName(res, d.Name, label, names)

	if d.Source == "" {
		res.AddError("empty_source", "trigger object is empty", label, "source")
	}

	if d.Target == "" {
		res.AddError("empty_target", "action target is empty", label, "target")
	}

	if _, err := keypath.Parse(d.KeyPath); err != nil {
		res.AddError("invalid_key_path", err.Error(), label, "key_path")
	}

	if d.Action == "" {
		res.AddError("empty_action", "action is empty", label, "action")
	}
}

func checkName(res *diagnostic.Diagnostics, name, label string, seen map[string]string) {
	if name == "" {
		return
	}

	if _, ok := seen[name]; ok {
		res.AddError("duplicate_name", fmt.Sprintf("declaration name %q is used more than once", name), label, "name")
		return
	}

	seen[name] = label
}

func knownNames(r transform.Resolver) []string {
	if n, ok := r.(interface{ Names() []string }); ok {
		return n.Names()
	}

	return nil
}

func resolverOrDefault(r transform.Resolver) transform.Resolver {
	if r == nil {
		return transform.Default
	}

	return r
}
