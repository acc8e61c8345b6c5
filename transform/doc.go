// Package transform provides value transformers applied when a binding
// copies a value from one endpoint to the other.
//
// A Transformer maps values forward (source to target) and, when it allows
// reverse transformation, backward (target to source). Two-way bindings need
// the reverse direction; a transformer without it fails with ErrNotInvertible.
//
// Transformers can be referenced by name through a Registry. Default is the
// process-wide registry and comes preloaded with:
//
//   - Identity: passes values through, invertible.
//   - NegateBoolean: logical not, invertible.
//   - IsNil: reports whether the value is nil, forward only.
//   - IsNotNil: reports whether the value is non-nil, forward only.
//
// # Definition files
//
// Additional transformers can be declared in YAML and registered at start-up:
//
//	transformers:
//	  - name: ageToSliderRatio
//	    kind: linear
//	    scale: 0.01
//	  - name: moodToColor
//	    kind: lookup
//	    table:
//	      happy: yellow
//	      sad: blue
//	  - name: notEnabled
//	    kind: negate
//
// Linear transformers map x to x*scale+offset and invert when scale is not
// zero; optional min and max clamp the forward result. Lookup transformers
// invert when their table values are unique.
package transform
