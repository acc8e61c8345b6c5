// Package keypath defines how bound objects are addressed and observed.
//
// # Key paths
//
// A key path is a dotted list of identifiers resolved against an object:
//
//	age
//	address.city
//	selection.item.title
//
// Each segment must start with a letter or underscore and continue with
// letters, digits or underscores.
//
// # Host objects
//
// Objects take part in bindings by implementing Object, a get/set capability
// over key paths. Objects that can report changes implement Observable; the
// Observer interface is the subscription contract the binding runtime relies
// on, and DefaultObserver delegates it to Observable.
//
// Two host models are provided:
//
//   - Model stores values in a map and is meant to be embedded in host types.
//   - Struct adapts a pointer to a plain struct through reflection, converting
//     assigned values to the field type with package primitive.
//
// Both deliver change notifications synchronously, in registration order, on
// the goroutine that performed the write. Observers may subscribe or cancel
// from within a notification. Dotted paths are observed as chains: when an
// intermediate value is replaced the observation moves to the new value.
//
// Cancel functions handed out by observation never hold the observed object,
// so a subscription does not keep its object alive.
package keypath
