package declare

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"kvbind/binding"
	"kvbind/internal/diagnostic"
	"kvbind/internal/match"
	"kvbind/keypath"
	"kvbind/transform"
)

// ApplyOption customizes Apply.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	onError  binding.ErrorHandler
	observer keypath.Observer
}

// WithErrorHandler installs h on every created binding.
func WithErrorHandler(h binding.ErrorHandler) ApplyOption {
	return func(c *applyConfig) {
		c.onError = h
	}
}

// WithObserver makes every created binding observe through o.
func WithObserver(o keypath.Observer) ApplyOption {
	return func(c *applyConfig) {
		c.observer = o
	}
}

// Apply validates doc and creates its bindings between the objects of
// scope. Transformers are looked up in the document first, then in reg (or
// transform.Default when reg is nil).
//
// A document with validation errors creates nothing. Otherwise each
// declaration either creates its binding or is reported as an error; the
// others are still applied.
func Apply(doc *Document, scope *Scope, reg transform.Resolver, opts ...ApplyOption) (*Set, *diagnostic.Diagnostics) {
	set := &Set{}

	res := Validate(doc, reg)
	if res.HasErrors() {
		return set, res
	}

	var cfg applyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	local := transform.NewRegistry()
	for _, err := range transform.RegisterAll(local, doc.Transformers) {
		res.AddError("invalid_transformer", err.Error(), "", "transformers")
	}

	resolver := transform.Chain(local, resolverOrDefault(reg))

	for i := range doc.Bindings {
		d := &doc.Bindings[i]
		label := d.Label(i)

		src, ok1 := lookupObject(res, scope, d.Source, label, "source")
		dst, ok2 := lookupObject(res, scope, d.Target, label, "target")

		if !ok1 || !ok2 {
			continue
		}

		b, err := binding.Bind(src, d.SourcePath, dst, d.TargetPath, binding.Options{
			TwoWay:               d.TwoWay,
			RetainsTarget:        d.RetainsTarget,
			ValueTransformerName: d.Transformer,
			Transformers:         resolver,
			Observer:             cfg.observer,
			OnError:              cfg.onError,
		})
		if err != nil {
			res.AddError("bind_failed", err.Error(), label, "")
			continue
		}

		set.add(label, b)
	}

	for i := range doc.Actions {
		d := &doc.Actions[i]
		label := d.Label(i)

		src, ok1 := lookupObject(res, scope, d.Source, label, "source")
		dst, ok2 := lookupObject(res, scope, d.Target, label, "target")

		if !ok1 || !ok2 {
			continue
		}

		b, err := binding.BindAction(src, d.KeyPath, dst, d.Action, binding.ActionOptions{
			Observer: cfg.observer,
			OnError:  cfg.onError,
		})
		if err != nil {
			res.AddError("bind_failed", err.Error(), label, "")
			continue
		}

		set.add(label, b)
	}

	log.Debug().
		Int("bindings", set.Len()).
		Int("errors", len(res.Errors)).
		Msg("applied binding document")

	return set, res
}

func lookupObject(res *diagnostic.Diagnostics, scope *Scope, name, label, field string) (binding.Ref, bool) {
	if scope != nil {
		if ref, ok := scope.Lookup(name); ok {
			return ref, true
		}
	}

	d := res.AddError("unknown_object", fmt.Sprintf("unknown object %q", name), label, field)
	if scope != nil {
		d.WithSuggestions(match.Suggest(name, scope.Names(), maxSuggestions)...)
	}

	return binding.Ref{}, false
}
