package binding

import (
	"kvbind/keypath"
	"kvbind/transform"
)

// Options configures a value binding.
type Options struct {
	// TwoWay also copies target changes back to the source. The value
	// transformer must then allow reverse transformation.
	TwoWay bool

	// RetainsTarget keeps the target alive for as long as the source is
	// alive. Without it the binding only refers to the target weakly.
	RetainsTarget bool

	// ValueTransformer maps values on their way across the binding.
	ValueTransformer transform.Transformer

	// ValueTransformerName names a transformer resolved through
	// Transformers. It cannot be combined with ValueTransformer.
	ValueTransformerName string

	// Transformers resolves ValueTransformerName. Defaults to transform.Default.
	Transformers transform.Resolver

	// Observer subscribes to key path changes. Defaults to keypath.DefaultObserver.
	Observer keypath.Observer

	// OnError receives dropped updates. Without it they are logged.
	OnError ErrorHandler
}

func (o Options) transformer() (transform.Transformer, error) {
	switch {
	case o.ValueTransformer != nil && o.ValueTransformerName != "":
		return nil, invalid("both ValueTransformer and ValueTransformerName are set")
	case o.ValueTransformer != nil:
		return o.ValueTransformer, nil
	case o.ValueTransformerName == "":
		return nil, nil
	}

	resolver := o.Transformers
	if resolver == nil {
		resolver = transform.Default
	}

	t, err := resolver.Lookup(o.ValueTransformerName)
	if err != nil {
		return nil, invalid("%v", err)
	}

	return t, nil
}

// ActionOptions configures an action binding.
type ActionOptions struct {
	// Observer subscribes to trigger changes. Defaults to keypath.DefaultObserver.
	Observer keypath.Observer

	// OnError receives failed action invocations. Without it they are logged.
	OnError ErrorHandler
}

func observerOrDefault(o keypath.Observer) keypath.Observer {
	if o == nil {
		return keypath.DefaultObserver{}
	}

	return o
}
