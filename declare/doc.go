// Package declare instantiates bindings from YAML or TOML documents.
//
// A document names the objects it binds; the names are resolved through a
// Scope the host fills with references to its objects. Transformers are
// referenced by name and may be defined inline in the document.
//
//	version: "1"
//	transformers:
//	  - name: percent
//	    kind: linear
//	    scale: 0.01
//	bindings:
//	  - name: age-slider
//	    source: person
//	    source_path: age
//	    target: slider
//	    target_path: value
//	    two_way: true
//	    transformer: percent
//	actions:
//	  - name: submit
//	    source: button
//	    key_path: tapped
//	    target: controller
//	    action: submit
package declare
